package session_test

import (
	"context"
	"time"

	sessionDatamodel "github.com/frahmantamala/employee-admin/internal/core/datamodel/session"
	"github.com/frahmantamala/employee-admin/internal/session"
	"github.com/frahmantamala/employee-admin/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("RunJanitor", func() {
	It("should purge expired sessions until stopped", func() {
		repo := session.NewMemoryRepository()
		svc := session.NewService(repo, nil, time.Hour, logger.Discard())
		Expect(repo.Create(&sessionDatamodel.ConsoleSession{ID: "old", Token: "t", ExpiresAt: time.Now().Add(-time.Minute)})).To(Succeed())

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			defer close(done)
			session.RunJanitor(ctx, svc, 10*time.Millisecond, logger.Discard())
		}()

		Eventually(func() bool {
			s, _ := repo.GetByID("old")
			return s == nil
		}).Should(BeTrue())

		cancel()
		Eventually(done).Should(BeClosed())
	})
})

package internal_test

import (
	"os"
	"time"

	"github.com/frahmantamala/employee-admin/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {
	var cfg *internal.Config

	BeforeEach(func() {
		cfg = &internal.Config{}
		cfg.ApplyDefaults()
		cfg.EmployeeService.BaseURL = "http://localhost:8080"
	})

	It("should accept the defaults once a service url is set", func() {
		Expect(cfg.Validate()).To(Succeed())
	})

	It("should reject a missing employee service url", func() {
		cfg.EmployeeService.BaseURL = ""
		err := cfg.Validate()
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("base_url is required"))
	})

	It("should reject a non-http employee service url", func() {
		cfg.EmployeeService.BaseURL = "ftp://files"
		Expect(cfg.Validate()).To(MatchError(ContainSubstring("must be http or https")))
	})

	It("should collect errors from every section", func() {
		cfg.Server.Port = 0
		cfg.Security.SessionTTL = time.Second
		cfg.Console.LoginPath = "login"

		err := cfg.Validate()
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("server config"))
		Expect(err.Error()).To(ContainSubstring("security config"))
		Expect(err.Error()).To(ContainSubstring("console config"))
	})

	It("should require a long jwt secret when one is set", func() {
		cfg.Security.JWTSecret = "short"
		Expect(cfg.Validate()).To(MatchError(ContainSubstring("jwt_secret")))
	})

	It("should only check pool sizes when a database is configured", func() {
		cfg.Database.MaxIdleConns = 10
		cfg.Database.MaxOpenConns = 1
		Expect(cfg.Validate()).To(Succeed())

		cfg.Database.Source = "postgres://localhost/console"
		Expect(cfg.Validate()).To(MatchError(ContainSubstring("max_idle_conns")))
	})

	Describe("LoadConfigFromEnv", func() {
		AfterEach(func() {
			os.Unsetenv("EMPLOYEE_SERVICE_URL")
			os.Unsetenv("SESSION_TTL")
			os.Unsetenv("HTTP_PORT")
		})

		It("should read overrides from the environment", func() {
			os.Setenv("EMPLOYEE_SERVICE_URL", "https://employees.internal")
			os.Setenv("SESSION_TTL", "2h")
			os.Setenv("HTTP_PORT", "9090")

			env := internal.LoadConfigFromEnv()
			Expect(env.EmployeeService.BaseURL).To(Equal("https://employees.internal"))
			Expect(env.Security.SessionTTL).To(Equal(2 * time.Hour))
			Expect(env.Server.Port).To(Equal(9090))
			Expect(env.Validate()).To(Succeed())
		})

		It("should fall back to defaults for unparsable values", func() {
			os.Setenv("HTTP_PORT", "not-a-number")

			env := internal.LoadConfigFromEnv()
			Expect(env.Server.Port).To(Equal(3000))
		})
	})
})

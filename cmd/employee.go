package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/frahmantamala/employee-admin/internal/employee"
	"github.com/frahmantamala/employee-admin/internal/employeeservice"
	"github.com/frahmantamala/employee-admin/internal/session"
	"github.com/frahmantamala/employee-admin/pkg/logger"
	"github.com/spf13/cobra"
)

var employeeCmd = &cobra.Command{
	Use:   "employee",
	Short: "Talk to the employee service directly",
	Long:  `List, inspect and add employees through the same client the console uses`,
}

var listEmployeesCmd = &cobra.Command{
	Use:   "list",
	Short: "List one page of employees",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, sess, err := employeeCLI()
		if err != nil {
			return err
		}

		page, err := svc.LoadEmployees(cmd.Context(), sess, employeePage)
		if err != nil {
			return describeServiceError(err)
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tFIRST NAME\tLAST NAME\tEMAIL\tJOB TITLE\tSTART DATE")
		for _, e := range page.Employees {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", e.ID, e.FirstName, e.LastName, e.Email, e.JobTitle, e.StartDate)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Printf("Page %d of %d\n", page.CurrentPage+1, page.TotalPages)
		return nil
	},
}

var getEmployeeCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show one employee",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, sess, err := employeeCLI()
		if err != nil {
			return err
		}

		e, err := svc.GetEmployee(cmd.Context(), sess, args[0])
		if err != nil {
			return describeServiceError(err)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(e)
	},
}

var addEmployeeCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an employee",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, sess, err := employeeCLI()
		if err != nil {
			return err
		}

		if err := svc.AddEmployee(cmd.Context(), sess, newEmployee); err != nil {
			return describeServiceError(err)
		}
		fmt.Println("Employee added successfully!")
		return nil
	},
}

var (
	employeeToken string
	employeePage  int
	newEmployee   employee.CreateEmployeeDTO
)

// employeeCLI builds the service with an ADMIN session around the --token value.
func employeeCLI() (*employee.Service, *session.Session, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	if employeeToken == "" {
		employeeToken = os.Getenv("EMPLOYEE_SERVICE_TOKEN")
	}
	if employeeToken == "" {
		return nil, nil, errors.New("a token is required: pass --token or set EMPLOYEE_SERVICE_TOKEN")
	}

	client := employeeservice.NewClient(employeeservice.Config{
		BaseURL: cfg.EmployeeService.BaseURL,
		Timeout: cfg.EmployeeService.Timeout,
	}, logger.Discard())

	sess := &session.Session{Token: employeeToken, Role: session.RoleAdmin}
	return employee.NewService(client, logger.Discard()), sess, nil
}

func describeServiceError(err error) error {
	var statusErr *employeeservice.StatusError
	if errors.As(err, &statusErr) {
		return fmt.Errorf("Error: %s", statusErr.Body)
	}
	return err
}

func init() {
	employeeCmd.PersistentFlags().StringVar(&employeeToken, "token", "", "bearer token for the employee service")

	listEmployeesCmd.Flags().IntVar(&employeePage, "page", 0, "zero-based page index")

	addEmployeeCmd.Flags().StringVar(&newEmployee.FirstName, "first-name", "", "first name")
	addEmployeeCmd.Flags().StringVar(&newEmployee.LastName, "last-name", "", "last name")
	addEmployeeCmd.Flags().StringVar(&newEmployee.Email, "email", "", "email address")
	addEmployeeCmd.Flags().StringVar(&newEmployee.JobTitle, "job-title", "", "job title")
	addEmployeeCmd.Flags().StringVar(&newEmployee.BirthDate, "birth-date", "", "birth date, YYYY-MM-DD")
	addEmployeeCmd.Flags().StringVar(&newEmployee.StartDate, "start-date", "", "start date, YYYY-MM-DD")
	addEmployeeCmd.Flags().StringVar(&newEmployee.AddressType, "address-type", "", "address type, e.g. HOME")
	addEmployeeCmd.Flags().StringVar(&newEmployee.PhotoName, "photo", "", "photo file name (optional)")

	employeeCmd.AddCommand(listEmployeesCmd, getEmployeeCmd, addEmployeeCmd)
	rootCmd.AddCommand(employeeCmd)
}

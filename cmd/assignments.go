package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/eowork/pmoprototype-sub005/pkg/assignment"
)

var (
	assignProjectTitle string
	assignStaffName    string
	assignAssignedBy   string
	assignCanEdit      bool
	assignCanDelete    bool
	assignCanViewDocs  bool
	assignCanUpload    bool
)

// assignmentsCmd manages the project assignment ledger
var assignmentsCmd = &cobra.Command{
	Use:   "assignments",
	Short: "Manage project staff assignments.",
}

var assignmentsListCmd = &cobra.Command{
	Use:   "list [project-id]",
	Short: "List assignments, optionally for a single project.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		e, err := openEngine(context.Background())
		if err != nil {
			log.Fatal(err)
		}
		defer e.Close()

		var records []assignment.Assignment
		if len(args) == 1 {
			records = e.assignments.StaffOnProject(args[0])
		} else {
			records = e.assignments.List()
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PROJECT\tSTAFF\tEDIT\tDELETE\tVIEW DOCS\tUPLOAD DOCS\tASSIGNED BY\tASSIGNED AT")
		for _, a := range records {
			fmt.Fprintf(w, "%s\t%s\t%t\t%t\t%t\t%t\t%s\t%s\n",
				a.ProjectID, a.StaffIdentity,
				a.Permissions.CanEdit, a.Permissions.CanDelete,
				a.Permissions.CanViewDocuments, a.Permissions.CanUploadDocuments,
				a.AssignedBy, a.AssignedAt.Format("2006-01-02 15:04"))
		}
		w.Flush()
	},
}

var assignmentsAssignCmd = &cobra.Command{
	Use:   "assign <project-id> <staff-identity>",
	Short: "Assign a staff member to a project (upsert).",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		e, err := openEngine(context.Background())
		if err != nil {
			log.Fatal(err)
		}
		defer e.Close()

		rec, err := e.assignments.Assign(context.Background(), args[0], assignProjectTitle, args[1], assignStaffName, assignAssignedBy,
			assignment.Permissions{
				CanEdit:            assignCanEdit,
				CanDelete:          assignCanDelete,
				CanViewDocuments:   assignCanViewDocs,
				CanUploadDocuments: assignCanUpload,
			})
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("assigned %s to %s (%s)\n", rec.StaffIdentity, rec.ProjectID, rec.ID)
	},
}

var assignmentsRemoveCmd = &cobra.Command{
	Use:   "remove <project-id> <staff-identity>",
	Short: "Revoke a staff member's assignment on a project.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		e, err := openEngine(context.Background())
		if err != nil {
			log.Fatal(err)
		}
		defer e.Close()

		if err := e.assignments.Remove(context.Background(), args[0], args[1]); err != nil {
			log.Fatal(err)
		}

		fmt.Printf("removed %s from %s\n", args[1], args[0])
	},
}

func init() {
	rootCmd.AddCommand(assignmentsCmd)
	assignmentsCmd.AddCommand(assignmentsListCmd, assignmentsAssignCmd, assignmentsRemoveCmd)

	assignmentsAssignCmd.Flags().StringVar(&assignProjectTitle, "title", "", "project title")
	assignmentsAssignCmd.Flags().StringVar(&assignStaffName, "name", "", "staff display name")
	assignmentsAssignCmd.Flags().StringVar(&assignAssignedBy, "by", "", "administrator identity performing the grant")
	assignmentsAssignCmd.Flags().BoolVar(&assignCanEdit, "edit", false, "grant edit")
	assignmentsAssignCmd.Flags().BoolVar(&assignCanDelete, "delete", false, "grant delete")
	assignmentsAssignCmd.Flags().BoolVar(&assignCanViewDocs, "view-docs", false, "grant document viewing")
	assignmentsAssignCmd.Flags().BoolVar(&assignCanUpload, "upload-docs", false, "grant document upload")
}

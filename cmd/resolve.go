package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/eowork/pmoprototype-sub005/pkg/access"
)

var (
	actorIdentity   string
	actorRole       string
	actorDepartment string
)

// resolveCmd prints the verdicts the dashboard would produce for an actor
var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve access verdicts for an actor.",
}

var resolvePageCmd = &cobra.Command{
	Use:   "page <page-id>",
	Short: "Decide whether the actor may access a page.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		actor, e := mustActorAndEngine()
		defer e.Close()

		fmt.Printf("page %s: %s\n", args[0], verdict(e.resolver.CanAccessPage(actor, args[0])))
	},
}

var resolveProjectCmd = &cobra.Command{
	Use:   "project <project-id>",
	Short: "Decide what the actor may do with a project record.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		actor, e := mustActorAndEngine()
		defer e.Close()

		projectID := args[0]
		fmt.Printf("project %s:\n", projectID)
		fmt.Printf("  view:             %s\n", verdict(e.resolver.CanViewProject(actor, projectID)))
		fmt.Printf("  edit:             %s\n", verdict(e.resolver.CanEditProject(actor, projectID)))
		fmt.Printf("  delete:           %s\n", verdict(e.resolver.CanDeleteProject(actor, projectID)))
		fmt.Printf("  view documents:   %s\n", verdict(e.resolver.CanViewProjectDocuments(actor, projectID)))
		fmt.Printf("  upload documents: %s\n", verdict(e.resolver.CanUploadProjectDocuments(actor, projectID)))
	},
}

var resolvePermissionsCmd = &cobra.Command{
	Use:   "permissions <category>",
	Short: "Print the actor's capability set within a page category.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		actor, e := mustActorAndEngine()
		defer e.Close()

		caps := e.resolver.UserPermissions(actor, args[0])
		fmt.Printf("category %s:\n", args[0])
		fmt.Printf("  view:             %s\n", verdict(caps.CanView))
		fmt.Printf("  add:              %s\n", verdict(caps.CanAdd))
		fmt.Printf("  edit:             %s\n", verdict(caps.CanEdit))
		fmt.Printf("  delete:           %s\n", verdict(caps.CanDelete))
		fmt.Printf("  approve:          %s\n", verdict(caps.CanApprove))
		fmt.Printf("  assign staff:     %s\n", verdict(caps.CanAssignStaff))
		fmt.Printf("  manage documents: %s\n", verdict(caps.CanManageDocuments))
		fmt.Printf("  export data:      %s\n", verdict(caps.CanExportData))

		if caps.Projects.All {
			fmt.Println("  projects:         all")
		} else {
			fmt.Printf("  projects:         %v\n", caps.Projects.IDs)
		}
	},
}

// mustActorAndEngine builds the actor from flags and opens the data file
func mustActorAndEngine() (access.Actor, *engine) {
	role, err := access.ParseRole(actorRole)
	if err != nil {
		log.Fatalf("invalid role %q: %s", actorRole, err)
	}

	e, err := openEngine(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	return access.Actor{
		Identity:   actorIdentity,
		Role:       role,
		Department: actorDepartment,
	}, e
}

func verdict(allowed bool) string {
	if allowed {
		return "allow"
	}

	return "deny"
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.AddCommand(resolvePageCmd, resolveProjectCmd, resolvePermissionsCmd)

	resolveCmd.PersistentFlags().StringVar(&actorIdentity, "identity", "", "actor identity")
	resolveCmd.PersistentFlags().StringVar(&actorRole, "role", "staff", "actor role (admin|staff|editor|client)")
	resolveCmd.PersistentFlags().StringVar(&actorDepartment, "department", "General", "actor department")
	_ = resolveCmd.MarkPersistentFlagRequired("identity")
}

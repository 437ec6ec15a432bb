package commands

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/eeese/showcase/internal/domain"
)

func (c *CLI) newProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project", "p"},
		Short:   "Read and edit the project catalog",
	}

	cmd.AddCommand(c.newProjectsListCmd())
	cmd.AddCommand(c.newProjectsGetCmd())
	cmd.AddCommand(c.newProjectsAddCmd())
	cmd.AddCommand(c.newProjectsClearCmd())
	return cmd
}

func (c *CLI) newProjectsListCmd() *cobra.Command {
	var (
		category string
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects, optionally in one category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.checkOutput(); err != nil {
				return err
			}
			a, err := c.open()
			if err != nil {
				return err
			}
			defer a.Close()

			var projects []domain.Project
			if category == "" {
				projects, err = a.projects.GetProjects(cmd.Context(), force)
			} else {
				cat, perr := domain.ParseCategory(category)
				if perr != nil {
					return perr
				}
				projects, err = a.projects.GetProjectsByCategory(cmd.Context(), force, cat)
			}
			if err != nil {
				return err
			}
			return c.printProjects(projects)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only list projects in this category")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Bypass the cache and race both sources")
	return cmd
}

func (c *CLI) newProjectsGetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.checkOutput(); err != nil {
				return err
			}
			a, err := c.open()
			if err != nil {
				return err
			}
			defer a.Close()

			project, err := a.projects.GetProject(cmd.Context(), args[0], force)
			if err != nil {
				return err
			}
			return c.printProjects([]domain.Project{project})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Bypass the cache and race both sources")
	return cmd
}

func (c *CLI) newProjectsAddCmd() *cobra.Command {
	var (
		attrs    domain.ProjectAttrs
		category string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a project to the local store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.checkOutput(); err != nil {
				return err
			}
			cat, err := domain.ParseCategory(category)
			if err != nil {
				return err
			}
			attrs.Category = cat
			if attrs.ID == "" {
				attrs.ID = uuid.NewString()
			}
			project, err := domain.NewProject(attrs)
			if err != nil {
				return err
			}

			a, err := c.open()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.projects.InsertProject(cmd.Context(), project); err != nil {
				return err
			}
			return c.printProjects([]domain.Project{project})
		},
	}

	cmd.Flags().StringVar(&attrs.ID, "id", "", "Project ID (generated when empty)")
	cmd.Flags().StringVar(&attrs.Name, "name", "", "Project name")
	cmd.Flags().StringVar(&attrs.Head, "head", "", "Project head")
	cmd.Flags().StringVar(&attrs.Description, "desc", "", "Project description")
	cmd.Flags().StringVar(&category, "category", "", "Project category")
	cmd.Flags().StringSliceVar(&attrs.Prerequisites, "prereq", nil, "Prerequisite (repeatable or comma separated)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func (c *CLI) newProjectsClearCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove projects from the local store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.open()
			if err != nil {
				return err
			}
			defer a.Close()

			if category == "" {
				return a.projects.ClearProjects(cmd.Context())
			}
			cat, err := domain.ParseCategory(category)
			if err != nil {
				return err
			}
			return a.projects.ClearProjectsInCategory(cmd.Context(), cat)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only clear this category")
	return cmd
}

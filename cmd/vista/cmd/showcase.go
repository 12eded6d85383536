package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/go-vista/vista/cmd/vista/internal/config"
	"github.com/go-vista/vista/pkg/errors"
	"github.com/go-vista/vista/showcase"
)

var showcaseName string

var showcaseCmd = &cobra.Command{
	Use:   "showcase",
	Short: "Run the demo app and print each render stage",
	Long: `Showcase renders a small contact-list app into an in-memory
document, drives it through a model change and a pub/sub update, then
disposes the whole tree and reports what was released.

The app name comes from --name, else vista.yaml or go.mod in the
current project.`,
	RunE: func(c *cobra.Command, args []string) error {
		name := showcaseName
		if name == "" {
			name = "Contacts"
			if root, err := config.FindProjectRoot(); err == nil {
				if resolved, err := config.Resolve(root); err == nil {
					name = resolved.AppName
					if resolved.Verbose {
						errors.SetHandler(&errors.LogHandler{Verbose: true})
					}
				}
			}
		}
		return showcase.NewApp(name).Run(os.Stdout)
	},
}

func init() {
	showcaseCmd.Flags().StringVar(&showcaseName, "name", "", "app name shown in the rendered heading")
	rootCmd.AddCommand(showcaseCmd)
}

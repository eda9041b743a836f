package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .rncss.yaml config file",
	Long:  `Create a .rncss.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigPath); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigPath)
		}

		if err := os.WriteFile(defaultConfigPath, []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", defaultConfigPath)
		return nil
	},
}

const defaultConfig = `# rncss configuration

# Shared settings
verbose: false
quiet: false

# Conversion settings
convert:
  source:
    - styles
  output-dir: src/styles
  include:
    - "**/*.css"
    - "**/*.scss"
    - "**/*.sass"
  exclude:
    - "**/node_modules/**"
  format: js                 # js | json | yaml
  pretty: false
  literal-object: false      # export a plain object instead of StyleSheet.create
  authorize-display: false
  unsupported: []            # extra properties to drop, e.g. [float, cursor]
  concurrency: 0             # 0 = number of CPUs
  report: text               # text | summary | json | none

# Watch settings
watch:
  debounce: 300ms
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}

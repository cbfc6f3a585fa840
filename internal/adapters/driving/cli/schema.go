package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// OptionsSchema is the JSON Schema (Draft 2020-12) of the option pair lists
// printed by search and options commands with --output json.
const OptionsSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/custodia-labs/eddkit/options.schema.json",
  "title": "Option pairs",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["value", "label"],
    "additionalProperties": false,
    "properties": {
      "value": {
        "type": "string",
        "description": "Record ID or option key"
      },
      "label": {
        "type": "string",
        "description": "HTML escaped display label",
        "not": { "pattern": "[<>\"]" }
      }
    }
  }
}
`

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of option pair output",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprint(cmd.OutOrStdout(), OptionsSchema)
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

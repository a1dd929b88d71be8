package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/notaspie/notaspie/config"
	"github.com/notaspie/notaspie/internal"
)

var (
	log *logrus.Logger

	cfgFile     string
	showVersion bool
	dumpConfig  bool
	generateKey bool
	fixturePath string
)

var cmd = &cobra.Command{
	Use:   "notaspie",
	Short: "notaspie corrects the grammar of texts and Word documents without touching footnotes or quotations",
	Run:   func(cmd *cobra.Command, args []string) { run() },
}

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test utilities",
}

var createFixturesCmd = &cobra.Command{
	Use:   "create-fixtures",
	Short: "Create texts with planted mistakes for testing a grammar checker",
	RunE: func(cmd *cobra.Command, args []string) error {
		fixtureCount, _ := cmd.Flags().GetInt("count")
		outputDir, _ := cmd.Flags().GetString("outputDir")
		path, err := GenerateFixtures(fixtureCount, outputDir)
		if err != nil {
			return err
		}
		fmt.Printf("Fixtures written to %s\n", path)
		return nil
	},
}

var runFixturesCmd = &cobra.Command{
	Use:   "run-fixtures",
	Short: "Correct the fixture texts with the configured grammar checker",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("error configuring notaspie: %w", err)
		}
		config.SetLogLevel(cfg)
		return RunFixtures(cmd.Context(), cfg, fixturePath, cmd.OutOrStdout())
	},
}

var dumpJsonSchemaCmd = &cobra.Command{
	Use:     "json-schema",
	Short:   "Generates JSON Schema for notaspie's configuration file",
	Example: "notaspie json-schema > notaspie_config_schema.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := config.JSONSchema()
		if err != nil {
			return err
		}
		fmt.Println(string(schema))
		return nil
	},
}

func init() {
	testCmd.AddCommand(createFixturesCmd)
	testCmd.AddCommand(runFixturesCmd)
	cmd.AddCommand(testCmd)
	cmd.AddCommand(dumpJsonSchemaCmd)
	cmd.AddCommand(correctCmd)
	cmd.AddCommand(renderCmd)

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default config.yaml)")
	cmd.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "print version number")
	cmd.PersistentFlags().BoolVarP(&dumpConfig, "dump-config", "d", false, "dump config")
	cmd.PersistentFlags().
		BoolVarP(&generateKey, "generate-token", "g", false, "generate a new JWT token")

	createFixturesCmd.Flags().Int("count", 20, "Number of fixture texts to generate")
	createFixturesCmd.Flags().String("outputDir", "./test_data", "Path to output fixtures")
	runFixturesCmd.Flags().
		StringVarP(&fixturePath, "fixturePath", "f", "./test_data/"+fixtureFile, "Fixture file to correct")
}

// Execute executes the root cobra command.
func Execute() {
	log = internal.GetLogger()
	log.SetLevel(logrus.InfoLevel)

	err := cmd.Execute()

	if err != nil {
		os.Exit(1)
	}
}

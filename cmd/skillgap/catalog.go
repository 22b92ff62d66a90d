package main

import (
	"fmt"

	"placement-pro/internal/domain/interview"
	"placement-pro/internal/domain/skillgap"
	"placement-pro/internal/infrastructure/catalog"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and validate skill catalogs",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a catalog YAML file",
	Long:  "Checks the file against the catalog schema, then builds the catalog and question bank from it.",
	RunE:  runCatalogValidate,
}

var catalogDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the built-in catalog as YAML",
	RunE:  runCatalogDump,
}

var catalogValidateFile string

func init() {
	catalogValidateCmd.Flags().StringVarP(&catalogValidateFile, "file", "f", "", "Path to catalog YAML (required)")
	if err := catalogValidateCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}

	catalogCmd.AddCommand(catalogValidateCmd, catalogDumpCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogValidate(cmd *cobra.Command, _ []string) error {
	doc, err := catalog.ReadFile(catalogValidateFile)
	if err != nil {
		return err
	}

	c, err := skillgap.NewCatalog(doc.CatalogSpec)
	if err != nil {
		return fmt.Errorf("%s: %w", catalogValidateFile, err)
	}

	questions := 0
	if len(doc.QuestionBank) > 0 {
		bank, err := interview.NewQuestionBank(doc.QuestionBank)
		if err != nil {
			return fmt.Errorf("%s: %w", catalogValidateFile, err)
		}
		questions = bank.Size()
	}

	fmt.Fprintf(cmd.OutOrStdout(), "ok dimensions=%d profiles=%d questions=%d fingerprint=%s\n",
		c.Len(), len(c.Profiles()), questions, c.Fingerprint())
	return nil
}

func runCatalogDump(cmd *cobra.Command, _ []string) error {
	b, err := catalog.MarshalDocument(catalog.Document{
		CatalogSpec:  skillgap.DefaultSpec(),
		QuestionBank: interview.DefaultTopics(),
	})
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(b)
	return err
}

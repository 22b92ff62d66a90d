package main

import (
	"errors"
	"fmt"
	"log"

	"placement-pro/internal/config"
	"placement-pro/internal/infrastructure/cache"
	"placement-pro/internal/usecase"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage cached skill-gap reports",
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete cached reports",
	RunE:  runCachePurge,
}

var cachePurgePattern string

func init() {
	cachePurgeCmd.Flags().StringVar(&cachePurgePattern, "pattern", usecase.ReportKeyPrefix+"*", "Key pattern to delete")
	cacheCmd.AddCommand(cachePurgeCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCachePurge(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadTooling()
	if err != nil {
		return err
	}

	rdb := cache.NewRedis(cfg.Redis, log.New(cmd.ErrOrStderr(), "", log.LstdFlags))
	defer rdb.Close()
	if !rdb.Available() {
		return errors.New("redis is not available")
	}

	n, err := rdb.DeleteByPattern(cmd.Context(), cachePurgePattern)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %d keys matching %s\n", n, cachePurgePattern)
	return nil
}

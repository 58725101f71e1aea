package main

import (
	"encodefaces/encodings"
	"encodefaces/storage"
	"encodefaces/utils"
	"log/slog"

	cli "github.com/spf13/cobra"
)

var inspectCmd = &cli.Command{
	Use:   "inspect",
	Short: "Print a summary of a serialized encodings file",
	Args:  cli.NoArgs,
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().StringP("encodings", "e", "", "path to serialized db of facial encodings")
	_ = inspectCmd.MarkFlagRequired("encodings")
}

func runInspect(cmd *cli.Command, args []string) error {
	target, _ := cmd.Flags().GetString("encodings")
	store, path, err := storage.For(target)
	if err != nil {
		return err
	}
	ds, err := encodings.Load(store, path)
	if err != nil {
		return err
	}
	counts := ds.CountByName()
	slog.Info("encodings loaded", "target", store.GetFullPath(path), "encodings", ds.Len(), "names", len(counts))
	for _, name := range utils.SortedKeys(counts) {
		slog.Info(name, "encodings", counts[name])
	}
	return nil
}

package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hwgcc/mutasi-flow/internal/common"
	"github.com/hwgcc/mutasi-flow/internal/model"
	"github.com/hwgcc/mutasi-flow/internal/preview"
	"github.com/hwgcc/mutasi-flow/internal/storage"
	"github.com/hwgcc/mutasi-flow/internal/tui"
	"github.com/hwgcc/mutasi-flow/internal/tui/themes"
)

func formCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "form",
		Short: "Buka form mutasi interaktif",
		Long: `Buka Form Berita Acara Mutasi di terminal.

Outlet dan daftar item dimuat dari server; draf tersimpan otomatis
saat keluar dan dapat dilanjutkan dengan --resume.`,
		RunE: runForm,
	}

	cmd.Flags().Bool("resume", false, "lanjutkan draf terakhir")
	cmd.Flags().String("draft", "", "lanjutkan draf dengan ID tertentu")
	cmd.Flags().String("theme", "", "tema tampilan (default, catppuccin-mocha)")
	_ = viper.BindPFlag("theme", cmd.Flags().Lookup("theme"))

	return cmd
}

func runForm(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	client, err := newAPIClient()
	if err != nil {
		return err
	}

	opts := []tui.Option{
		tui.WithClient(client),
		tui.WithRenderer(preview.NewFitzRenderer()),
		tui.WithTheme(themes.GetTheme(viper.GetString("theme"))),
	}
	if mb := viper.GetInt64("upload.max_mb"); mb > 0 {
		opts = append(opts, tui.WithMaxUpload(mb))
	}

	drafts, err := openDraftStore()
	if err != nil {
		// The form still works without local drafts.
		slog.Warn("draft store unavailable, autosave disabled", "error", err)
	} else {
		defer func() { _ = drafts.Close() }()
		opts = append(opts, tui.WithDrafts(drafts))

		resume, resumeErr := resolveResume(cmd, drafts)
		if resumeErr != nil {
			return resumeErr
		}
		if resume != nil {
			opts = append(opts, tui.WithResume(resume))
		}
	}

	return tui.Run(ctx, opts...)
}

func resolveResume(cmd *cobra.Command, drafts *storage.DraftStore) (*model.Draft, error) {
	ctx := cmd.Context()

	if id, _ := cmd.Flags().GetString("draft"); id != "" {
		d, err := drafts.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("draf %s: %w", id, err)
		}
		return &d, nil
	}

	if resume, _ := cmd.Flags().GetBool("resume"); resume {
		d, err := drafts.Latest(ctx)
		if errors.Is(err, storage.ErrDraftNotFound) {
			common.LogInfo("no draft to resume, starting fresh", nil)
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &d, nil
	}

	return nil, nil
}

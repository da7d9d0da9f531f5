package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/hwgcc/mutasi-flow/internal/form"
	"github.com/hwgcc/mutasi-flow/internal/model"
	"github.com/hwgcc/mutasi-flow/internal/storage"
)

func submitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Kirim draf form tanpa membuka TUI",
		Long: `Kirim draf Form Berita Acara Mutasi yang tersimpan langsung ke server.

Tanpa flag, draf terakhir yang dikirim. Validasi tetap dilakukan di
server; draf yang berhasil terkirim dihapus dari penyimpanan lokal.`,
		RunE: runSubmit,
	}

	cmd.Flags().String("draft", "", "ID draf yang akan dikirim (default: draf terakhir)")
	cmd.Flags().Bool("keep", false, "jangan hapus draf setelah terkirim")

	return cmd
}

func runSubmit(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	client, err := newAPIClient()
	if err != nil {
		return err
	}
	drafts, err := openDraftStore()
	if err != nil {
		return err
	}
	defer func() { _ = drafts.Close() }()

	var draftID string
	if id, _ := cmd.Flags().GetString("draft"); id != "" {
		draftID = id
	}

	d, err := loadDraft(cmd, drafts, draftID)
	if err != nil {
		return err
	}

	payload := form.PayloadFromDraft(d)
	progress := func(r io.Reader, size int64) io.Reader {
		bar := progressbar.DefaultBytes(size, "Mengunggah form mutasi")
		return io.TeeReader(r, bar)
	}

	if err := client.Submit(ctx, payload, progress); err != nil {
		return err
	}

	fmt.Printf("Form %s berhasil dikirim.\n", d.NoForm)

	if keep, _ := cmd.Flags().GetBool("keep"); !keep {
		if err := drafts.Delete(ctx, d.ID); err != nil && !errors.Is(err, storage.ErrDraftNotFound) {
			slog.Warn("failed to delete submitted draft", "draft_id", d.ID, "error", err)
		}
	}
	return nil
}

func loadDraft(cmd *cobra.Command, drafts *storage.DraftStore, id string) (d model.Draft, err error) {
	ctx := cmd.Context()
	if id != "" {
		d, err = drafts.Get(ctx, id)
		if err != nil {
			return d, fmt.Errorf("draf %s: %w", id, err)
		}
		return d, nil
	}
	d, err = drafts.Latest(ctx)
	if errors.Is(err, storage.ErrDraftNotFound) {
		return d, fmt.Errorf("tidak ada draf tersimpan: isi form dulu dengan 'mutasi form'")
	}
	return d, err
}

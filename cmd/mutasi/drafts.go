package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func draftsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drafts",
		Short: "Kelola draf form tersimpan",
	}

	cmd.AddCommand(draftsListCmd())
	cmd.AddCommand(draftsDeleteCmd())

	return cmd
}

func draftsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Tampilkan semua draf",
		RunE: func(cmd *cobra.Command, _ []string) error {
			drafts, err := openDraftStore()
			if err != nil {
				return err
			}
			defer func() { _ = drafts.Close() }()

			all, err := drafts.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(all) == 0 {
				fmt.Println("Belum ada draf tersimpan.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNO FORM\tTANGGAL\tPENGIRIM\tPENERIMA\tDIUBAH")
			for _, d := range all {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					d.ID, d.NoForm, d.Tanggal,
					d.OutletPengirim, d.OutletPenerima,
					d.UpdatedAt.Format("2006-01-02 15:04"),
				)
			}
			return w.Flush()
		},
	}
}

func draftsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Hapus draf",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			drafts, err := openDraftStore()
			if err != nil {
				return err
			}
			defer func() { _ = drafts.Close() }()

			if err := drafts.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Draf %s dihapus.\n", args[0])
			return nil
		},
	}
}

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/robert-malhotra/go-h5vtk/h5vtk"
	"github.com/robert-malhotra/go-h5vtk/hdf5"
)

func newIndexCmd() *subCommand {
	sc := &subCommand{EnvPrefix: "H5VTK_INDEX"}
	sc.Cmd = &cobra.Command{
		Use:   "index FILE",
		Short: "List or rebuild the object index of an HDF5 file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if sc.Conf.GetBool("rebuild") {
				if err := rebuildIndex(args[0]); err != nil {
					return err
				}
			}
			return listIndex(cmd.OutOrStdout(), args[0])
		},
	}
	sc.Cmd.Flags().Bool("rebuild", false, "Replace the index with every dataset group found in the file.")
	return sc
}

func listIndex(w io.Writer, path string) error {
	paths, err := h5vtk.ReadObjectIndex(path)
	if err != nil {
		return err
	}
	for i, p := range paths {
		fmt.Fprintf(w, "%d\t%s\n", i, p)
	}
	return nil
}

func rebuildIndex(path string) (err error) {
	f, err := hdf5.OpenReadWrite(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	paths, err := h5vtk.FindDataSets(f)
	if err != nil {
		return err
	}
	if err := h5vtk.ResetIndex(f); err != nil {
		return err
	}
	if err := h5vtk.AppendIndexEntries(f, paths); err != nil {
		return err
	}
	logger.Info("rebuilt index", zap.String("file", path), zap.Int("entries", len(paths)))
	return nil
}

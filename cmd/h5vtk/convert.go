package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/robert-malhotra/go-h5vtk/h5vtk"
	"github.com/robert-malhotra/go-h5vtk/meshio"
)

func newImportCmd() *subCommand {
	sc := &subCommand{EnvPrefix: "H5VTK_IMPORT"}
	sc.Cmd = &cobra.Command{
		Use:   "import",
		Short: "Write a YAML mesh into an HDF5 file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := requireFlag(sc.Conf, "in")
			if err != nil {
				return err
			}
			out, err := requireFlag(sc.Conf, "out")
			if err != nil {
				return err
			}
			return runImport(in, out, sc.Conf.GetString("path"), sc.Conf.GetBool("append"), sc.Conf.GetBool("index"))
		},
	}
	flags := sc.Cmd.Flags()
	flags.String("in", "", "YAML mesh to read.")
	flags.String("out", "", "HDF5 file to write.")
	flags.String("path", "/mesh", "Group that receives the dataset.")
	flags.Bool("append", true, "Add to an existing file instead of replacing it.")
	flags.Bool("index", true, "Record the group in the object index.")
	return sc
}

func runImport(in, out, hdfPath string, appendMode, index bool) error {
	ds, err := meshio.ReadFile(in)
	if err != nil {
		return err
	}
	opts := []h5vtk.WriteOption{h5vtk.WithAppend(appendMode)}
	if index {
		opts = append(opts, h5vtk.WithIndex())
	}
	if err := h5vtk.Write(out, hdfPath, ds, opts...); err != nil {
		return err
	}
	logger.Info("imported",
		zap.String("kind", string(ds.Kind())),
		zap.String("file", out),
		zap.String("path", hdfPath),
		zap.Int("points", ds.NumPoints()),
		zap.Int("cells", ds.NumCells()))
	return nil
}

func newExportCmd() *subCommand {
	sc := &subCommand{EnvPrefix: "H5VTK_EXPORT"}
	sc.Cmd = &cobra.Command{
		Use:   "export",
		Short: "Write a dataset from an HDF5 file as a YAML mesh",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := requireFlag(sc.Conf, "file")
			if err != nil {
				return err
			}
			var opts []h5vtk.ReadOption
			if name := sc.Conf.GetString("field-data-name"); name != "" {
				opts = append(opts, h5vtk.WithFieldDataName(name))
			}
			if sc.Conf.GetBool("read-all-fields") {
				opts = append(opts, h5vtk.WithReadAllFields())
			}
			hdfPath := sc.Conf.GetString("path")
			ds, err := h5vtk.Read(file, hdfPath, opts...)
			if err != nil {
				return err
			}
			logger.Info("exported",
				zap.String("kind", string(ds.Kind())),
				zap.String("file", file),
				zap.String("path", hdfPath),
				zap.Int("points", ds.NumPoints()),
				zap.Int("cells", ds.NumCells()))

			out := sc.Conf.GetString("out")
			if out == "" || out == "-" {
				return meshio.Encode(cmd.OutOrStdout(), ds)
			}
			return meshio.WriteFile(out, ds)
		},
	}
	flags := sc.Cmd.Flags()
	flags.String("file", "", "HDF5 file to read.")
	flags.String("path", "/mesh", "Group holding the dataset.")
	flags.String("out", "-", "YAML file to write, - for standard output.")
	flags.String("field-data-name", "", "Only keep field data with this block name.")
	flags.Bool("read-all-fields", false, "Keep field data whatever its block name.")
	return sc
}

package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/robert-malhotra/go-h5vtk/h5vtk"
	"github.com/robert-malhotra/go-h5vtk/vtk"
)

func newSampleCmd() *subCommand {
	sc := &subCommand{EnvPrefix: "H5VTK_SAMPLE"}
	sc.Cmd = &cobra.Command{
		Use:   "sample",
		Short: "Write a small PolyData mesh and index it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := requireFlag(sc.Conf, "out")
			if err != nil {
				return err
			}
			hdfPath := sc.Conf.GetString("path")
			pd, err := samplePolyData()
			if err != nil {
				return err
			}
			opts := []h5vtk.WriteOption{h5vtk.WithIndex(), h5vtk.WithAppend(sc.Conf.GetBool("append"))}
			if err := h5vtk.WritePolyData(out, hdfPath, pd, opts...); err != nil {
				return err
			}
			logger.Info("wrote sample", zap.String("file", out), zap.String("path", hdfPath),
				zap.Int("points", pd.NumPoints()), zap.Int("cells", pd.NumCells()))
			return nil
		},
	}
	flags := sc.Cmd.Flags()
	flags.String("out", "", "HDF5 file to write.")
	flags.String("path", "/sample", "Group that receives the dataset.")
	flags.Bool("append", false, "Add to an existing file instead of replacing it.")
	return sc
}

// samplePolyData is a unit square split into two triangles with an active
// point scalar called temperature.
func samplePolyData() (*vtk.PolyData, error) {
	pd := vtk.NewPolyData()
	pd.Points = vtk.NewPoints([]float32{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
		1, 1, 0,
	})
	pd.Polys.InsertNextCell(0, 1, 2)
	pd.Polys.InsertNextCell(1, 2, 3)
	temp := vtk.NewArray("temperature", 1, []float32{20, 21.5, 19, 22})
	if err := pd.PointData.SetActiveArray(vtk.Scalars, temp); err != nil {
		return nil, err
	}
	pd.FieldData.Add(vtk.NewStringArray("generator", 1, []string{"h5vtk sample"}))
	return pd, nil
}

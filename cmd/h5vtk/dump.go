package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/robert-malhotra/go-h5vtk/hdf5"
)

func newDumpCmd() *subCommand {
	sc := &subCommand{EnvPrefix: "H5VTK_DUMP"}
	sc.Cmd = &cobra.Command{
		Use:   "dump FILE",
		Short: "Print the groups, datasets and attributes of an HDF5 file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd.OutOrStdout(), args[0], sc.Conf.GetInt("max-values"))
		},
	}
	sc.Cmd.Flags().Int("max-values", 8, "Attribute values printed before eliding.")
	return sc
}

func runDump(w io.Writer, path string, maxValues int) error {
	f, err := hdf5.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	logger.Debug("dumping", zap.String("file", path), zap.Int("superblock", f.Version()))

	fmt.Fprintf(w, "%s (superblock v%d)\n", path, f.Version())
	var groups, datasets int
	err = hdf5.Walk(f.Root(), func(p string, obj hdf5.Object, err error) error {
		indent := strings.Repeat("  ", depth(p))
		if err != nil {
			fmt.Fprintf(w, "%s  ERROR: %v\n", indent, err)
			return nil
		}
		switch o := obj.(type) {
		case *hdf5.Group:
			groups++
			n, _ := o.NumMembers()
			fmt.Fprintf(w, "%s%s/ (%s members)\n", indent, o.Name(), humanize.Comma(int64(n)))
		case *hdf5.Dataset:
			datasets++
			fmt.Fprintf(w, "%s%s %s %v, %s elements, %s\n", indent, o.Name(), o.TypeName(), o.Shape(),
				humanize.Comma(int64(o.NumElements())), humanize.IBytes(uint64(o.StorageSize())))
		}
		for _, name := range obj.Attrs() {
			attr, err := obj.Attr(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s  @%s = %s\n", indent, name, formatAttr(attr, maxValues))
		}
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "walking %s", path)
	}
	fmt.Fprintf(w, "%d groups, %d datasets\n", groups, datasets)
	return nil
}

// depth is the number of path components, zero for the root.
func depth(p string) int {
	return len(hdf5.SplitPath(p))
}

func formatAttr(a *hdf5.Attribute, maxValues int) string {
	v, err := a.Value()
	if err != nil {
		return fmt.Sprintf("<%s: %v>", a.TypeName(), err)
	}
	if s, ok := v.([]string); ok && a.IsScalar() && len(s) == 1 {
		return fmt.Sprintf("%q", s[0])
	}
	if a.IsScalar() {
		return strings.Trim(fmt.Sprint(v), "[]")
	}
	if maxValues > 0 && a.NumElements() > maxValues {
		return fmt.Sprintf("%s[%d] (elided)", a.TypeName(), a.NumElements())
	}
	return fmt.Sprint(v)
}

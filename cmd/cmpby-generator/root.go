package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"cmpby-generator/internal/config"
)

// app holds the state shared by the commands of one invocation.
type app struct {
	cfgFile string
	dir     string

	cfg    *config.Config
	logger *log.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "cmpby-generator",
		Short: "Generate comparison and hashing code for annotated Go types",
		Long: titleStyle.Render("cmpby-generator") + pathStyle.Render(" - ordering and hashing by key") + `

Types opt in with comment directives:

  // cmpby
  // hashby
  type S struct {
      //cmpby
      //hashby
      A uint16
      B float32
  }

  //cmpby:keys Channel(), Pitch(), _fields
  type Note interface { ... }

Every package gets a <package>_cmpby.go file with Compare, Equal, Less,
LessOrEqual, Greater, GreaterOrEqual and Hash.`,
		PersistentPreRunE: a.load,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is ./.cmpby.yaml)")
	pf.StringVarP(&a.dir, "dir", "C", "", "run as if started in `dir`")
	pf.String("log-level", "", "log level: debug, info, warn or error")
	pf.String("compare-marker", "", "directive that requests a comparator")
	pf.String("hash-marker", "", "directive that requests a hasher")
	pf.String("sentinel", "", "placeholder for member keys in comparator key lists")
	pf.String("file-suffix", "", "suffix of generated files")
	pf.String("runtime-import", "", "import path of the runtime helper package")
	pf.Bool("comments", true, "write doc comments on generated declarations")
	pf.String("manifest", "", "YAML definition file read in addition to packages")

	root.AddCommand(
		newGenCmd(a),
		newCheckCmd(a),
		newDumpCmd(a),
		newExportCmd(a),
	)

	return root
}

// load reads the settings once flags are parsed.
func (a *app) load(cmd *cobra.Command, _ []string) error {
	cfg, path, err := config.Load(config.LoadOptions{
		ConfigFilePath: a.cfgFile,
		Dir:            a.dir,
		Flags:          cmd.Flags(),
	})
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: "cmpby",
		Level:  cfg.Level(),
	})

	if path != "" {
		a.logger.Debug("loaded config", "path", path)
	}

	return nil
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/mxhf/pyhetdex/cmd/ditherfile/app"
	"github.com/mxhf/pyhetdex/pkg/dither"
)

type createOptions struct {
	*Options
	outfile       string
	modelBases    []string
	idType        string
	fwhm          float64
	orderBy       string
	extension     string
	ditherPos     []float64
	ditherPosFile string
	illumination  []float64
	all           bool
}

func newCreateCommand(opts *Options) *cobra.Command {
	co := &createOptions{
		Options: opts,
	}

	cmd := &cobra.Command{
		Use:   "create [flags] <id> <fplane-file> <basename>...",
		Short: "Write dither files",
		Long: `Write the dither file of one IFU, or of every IFU in the focal plane
when --all is given. With --all the id argument is dropped and the
focal plane file comes first.

Basenames, model basenames and the outfile are templates: {id} expands
to the IFU identifier and {dither} to the 1-based dither number. Give
either a single template, expanded once per dither, or one value per
dither.`,
		Example: `  ditherfile create 046 fplane.txt 'SIMDEX-obs-1_D{dither}_{id}'
  ditherfile create --all fplane.txt 'SIMDEX-obs-1_D{dither}_{id}'
  ditherfile create -t specid -O DITHER -e _L.fits 002 fplane.txt exp01 exp02 exp03`,
		RunE: func(cmd *cobra.Command, args []string) error {
			co.applyDefaults(cmd)

			if co.all {
				if len(args) < 2 {
					return cmd.Help()
				}
				return runCreateAll(args[0], args[1:], co)
			}

			if len(args) < 3 {
				return cmd.Help()
			}
			return runCreate(args[0], args[1], args[2:], co)
		},
	}

	// Add flags specific to create command
	cmd.Flags().StringVarP(&co.outfile, "outfile", "o", "",
		"output file template (default from DITHERFILE_OUTFILE)")
	cmd.Flags().StringSliceVarP(&co.modelBases, "modelbases", "m", nil,
		"model basename template, one value or one per dither")
	cmd.Flags().StringVarP(&co.idType, "id-type", "t", "",
		"identifier space: ifuslot|ifuid|specid")
	cmd.Flags().Float64Var(&co.fwhm, "fwhm", 0,
		"seeing FWHM written to the dither file")
	cmd.Flags().StringVarP(&co.orderBy, "order-by", "O", "",
		"FITS header keyword to order the basenames by")
	cmd.Flags().StringVarP(&co.extension, "extension", "e", "",
		"extension appended to basenames for header lookups")
	cmd.Flags().Float64SliceVarP(&co.ditherPos, "ditherpos", "d", nil,
		"dither shifts dx1,..,dxn,dy1,..,dyn")
	cmd.Flags().StringVarP(&co.ditherPosFile, "ditherpos-file", "F", "",
		"file with per-IFU dither shifts")
	cmd.Flags().Float64SliceVar(&co.illumination, "illumination", nil,
		"per-dither relative illumination measurements")
	cmd.Flags().BoolVar(&co.all, "all", false,
		"write one dither file per focal plane entry")

	cmd.MarkFlagsMutuallyExclusive("ditherpos", "ditherpos-file")

	return cmd
}

// applyDefaults fills in flag values that were not given on the command
// line from the environment configuration.
func (co *createOptions) applyDefaults(cmd *cobra.Command) {
	cfg := co.Config

	if !cmd.Flags().Changed("outfile") {
		co.outfile = cfg.Outfile
	}
	if len(co.modelBases) == 0 {
		co.modelBases = []string{cfg.ModelBase}
	}
	if !cmd.Flags().Changed("id-type") {
		co.idType = cfg.IDType
	}
	if !cmd.Flags().Changed("fwhm") {
		co.fwhm = cfg.FWHM
	}
	if !cmd.Flags().Changed("extension") {
		co.extension = cfg.Extension
	}
	if len(co.ditherPos) == 0 && co.ditherPosFile == "" {
		co.ditherPos = dither.DefaultOffsets()
	}
}

func runCreate(id, fplanePath string, basenames []string, opts *createOptions) error {
	application := app.New(opts.Config)
	defer application.Shutdown()

	return application.Create(&app.CreateOptions{
		ID:            id,
		FPlanePath:    fplanePath,
		Basenames:     basenames,
		ModelBases:    opts.modelBases,
		Outfile:       opts.outfile,
		IDType:        opts.idType,
		FWHM:          opts.fwhm,
		OrderBy:       opts.orderBy,
		Extension:     opts.extension,
		Offsets:       opts.ditherPos,
		PositionsPath: opts.ditherPosFile,
		Illumination:  opts.illumination,
	})
}

func runCreateAll(fplanePath string, basenames []string, opts *createOptions) error {
	application := app.New(opts.Config)
	defer application.Shutdown()

	return application.CreateAll(&app.CreateOptions{
		FPlanePath:    fplanePath,
		Basenames:     basenames,
		ModelBases:    opts.modelBases,
		Outfile:       opts.outfile,
		IDType:        opts.idType,
		FWHM:          opts.fwhm,
		OrderBy:       opts.orderBy,
		Extension:     opts.extension,
		Offsets:       opts.ditherPos,
		PositionsPath: opts.ditherPosFile,
		Illumination:  opts.illumination,
	})
}

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/PrismCut/internal/builder"
	"github.com/piwi3910/PrismCut/internal/config"
	"github.com/piwi3910/PrismCut/internal/deck"
	"github.com/piwi3910/PrismCut/internal/element"
	"github.com/piwi3910/PrismCut/internal/export"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	element    string // element name; defaults to the model's first element
	output     string // deck output path; defaults to <model>.deck
	caseID     string // deck CASEID; defaults to the model name
	profile    string // build profile overriding the model's build options
	pdfPath    string // optional PDF report path
	dxfPath    string // optional DXF cross-section path
	xlsxPath   string // optional XLSX report path
	labelsPath string // optional inventory labels path
}

func newBuildCmd(configDir *string) *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "build <model.toml | preset:name>",
		Short: "Build a model element into a text deck and optional exports",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd.Context(), *configDir, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.element, "element", "e", "", "element to build (default: first in the model)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "deck output path (default: <model>.deck)")
	cmd.Flags().StringVar(&opts.caseID, "case-id", "", "deck case label (default: model name)")
	cmd.Flags().StringVarP(&opts.profile, "profile", "p", "", "build profile overriding the model's build options")
	cmd.Flags().StringVar(&opts.pdfPath, "pdf", "", "also write a PDF cross-section report")
	cmd.Flags().StringVar(&opts.dxfPath, "dxf", "", "also write a DXF cross-section (block elements only)")
	cmd.Flags().StringVar(&opts.xlsxPath, "xlsx", "", "also write an XLSX geometry report")
	cmd.Flags().StringVar(&opts.labelsPath, "labels", "", "also write QR inventory labels")

	return cmd
}

func runBuild(ctx context.Context, configDir, modelArg string, opts *buildOpts) error {
	logger := loggerFromContext(ctx)

	model, err := loadModel(modelArg)
	if err != nil {
		return err
	}
	el, err := pickElement(model, opts.element)
	if err != nil {
		return err
	}
	logger.Debugf("model %s: building element %s", model.Name, el.Name())

	specs := model.Build
	if opts.profile != "" {
		p, err := config.FindProfile(profilesPath(configDir), opts.profile)
		if err != nil {
			return err
		}
		specs = p.Specs()
		logger.Debugf("using build profile %s", p.Name)
	}
	appCfg, err := config.LoadAppConfig(appConfigPath(configDir))
	if err != nil {
		logger.Warnf("ignoring unreadable app config: %v", err)
		appCfg = config.DefaultAppConfig()
	}
	appCfg.ApplyToSpecs(&specs)

	b := builder.New(nil)
	p := newProgress(logger)
	core, err := b.Build(el, specs)
	if err != nil {
		return err
	}
	stats := b.CacheStats()
	p.done(fmt.Sprintf("Built %s: %d materials, %d unique sub-builds", el.Name(), len(core.Materials()), stats.Misses))

	caseID := opts.caseID
	if caseID == "" {
		caseID = model.Name
	}
	output := opts.output
	if output == "" {
		output = model.Name + ".deck"
	}
	if backup, err := config.BackupFile(output); err != nil {
		return err
	} else if backup != "" {
		logger.Debugf("backed up previous deck to %s", backup)
	}
	text := deck.NewWriter(caseID).Write(core)
	if err := os.WriteFile(output, []byte(text), 0644); err != nil {
		return fmt.Errorf("writing deck: %w", err)
	}
	logger.Infof("Wrote deck %s", output)

	meta := export.Metadata{ModelName: model.Name, ElementName: el.Name()}
	blk, isBlock := el.(*element.Block)
	if isBlock {
		meta.Pitch = blk.Pitch()
		if dims, err := builder.DeriveBlockDimensions(blk); err == nil {
			meta.Dimensions = &dims
		}
	}

	if opts.pdfPath != "" {
		if err := export.ExportPDF(opts.pdfPath, core, meta); err != nil {
			return err
		}
		logger.Infof("Wrote PDF report %s", opts.pdfPath)
	}
	if opts.dxfPath != "" {
		if !isBlock {
			return fmt.Errorf("DXF export requires a block element, %s is not one", el.Name())
		}
		if err := export.ExportDXF(opts.dxfPath, blk); err != nil {
			return err
		}
		logger.Infof("Wrote DXF cross-section %s", opts.dxfPath)
	}
	if opts.xlsxPath != "" {
		if err := export.ExportXLSX(opts.xlsxPath, core, meta); err != nil {
			return err
		}
		logger.Infof("Wrote XLSX report %s", opts.xlsxPath)
	}
	if opts.labelsPath != "" {
		if err := export.ExportLabels(opts.labelsPath, modelElements(model)); err != nil {
			return err
		}
		logger.Infof("Wrote labels %s", opts.labelsPath)
	}

	return nil
}

// pickElement resolves the requested element, defaulting to the model's
// first.
func pickElement(model *config.Model, name string) (element.Element, error) {
	if name != "" {
		return model.Element(name)
	}
	names := model.ElementNames()
	if len(names) == 0 {
		return nil, fmt.Errorf("model %q defines no elements", model.Name)
	}
	return model.Element(names[0])
}

func modelElements(model *config.Model) []element.Element {
	var elements []element.Element
	for _, name := range model.ElementNames() {
		if el, err := model.Element(name); err == nil {
			elements = append(elements, el)
		}
	}
	return elements
}

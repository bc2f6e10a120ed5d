package cmd

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stateful/qedit/internal/config"
	"github.com/stateful/qedit/internal/log"
	"github.com/stateful/qedit/pkg/document"
	"github.com/stateful/qedit/pkg/document/editor"
	"github.com/stateful/qedit/pkg/document/editor/plugins"
	"github.com/stateful/qedit/pkg/document/identity"
	"github.com/stateful/qedit/pkg/document/markup"
)

// readInput reads a local file, stdin when name is "-", or an https URL.
func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return data, errors.Wrap(err, "failed to read from stdin")
	}

	if strings.HasPrefix(name, "https://") {
		client := http.Client{
			Timeout: time.Second * 10,
		}
		resp, err := client.Get(name)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to get a file %q", name)
		}
		data, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		return data, errors.Wrap(err, "failed to read body")
	}

	data, err := os.ReadFile(name)
	return data, errors.Wrapf(err, "failed to read from file %q", name)
}

// parseDocument deserializes data as HTML, or as Markdown when name has a
// Markdown extension. Binary input is rejected.
func parseDocument(name string, data []byte, opts markup.Options) (*document.Document, error) {
	mtype := mimetype.Detect(data)
	log.Get().Debug("detected input type", zap.String("name", name), zap.String("mime", mtype.String()))
	if !strings.HasPrefix(mtype.String(), "text/") {
		return nil, errors.Errorf("unsupported input type %s", mtype)
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return markup.DeserializeMarkdown(data, opts)
	default:
		return markup.Deserialize(data, opts)
	}
}

func getConfig() *config.Config {
	if cfg == nil {
		return config.Default()
	}
	return cfg
}

func getIdentityResolver(c *config.Config) *identity.Resolver {
	mode := identity.FreshIdentity
	if c.Editor.PreserveIDs {
		mode = identity.PreserveIdentity
	}
	return identity.NewResolver(c.Editor.IDNamespace, identity.WithMode(mode))
}

// sectionSelector returns the selector configured for section. An empty
// section selects the whole body.
func sectionSelector(c *config.Config, section string) (string, error) {
	if section == "" {
		return "", nil
	}
	sel, ok := c.Sections[section]
	if !ok {
		return "", errors.Errorf("unknown section %q", section)
	}
	return sel, nil
}

func markupOptions(c *config.Config, ids markup.IdentityResolver, selector string, sanitize bool) markup.Options {
	return markup.Options{
		IDs:         ids,
		Placeholder: c.Editor.Placeholder,
		Selector:    selector,
		Sanitize:    sanitize || c.Export.Sanitize,
		Logger:      log.Get(),
	}
}

func tableStyle(c *config.Config) plugins.TableStyle {
	return plugins.TableStyle{
		BorderWidth:     c.Table.BorderWidth,
		EdgeBorderWidth: c.Table.EdgeBorderWidth,
		BorderColor:     c.Table.BorderColor,
		CornerRadius:    c.Table.CornerRadius,
	}
}

func newEditor(c *config.Config, doc *document.Document, ids document.IDGenerator) *editor.Editor {
	pluginCfg := plugins.Config{
		Placeholder:      c.Editor.Placeholder,
		PlaceholderClass: c.Editor.PlaceholderClass,
		Table:            tableStyle(c),
	}
	return editor.New(
		doc,
		editor.WithIDGenerator(ids),
		editor.WithLogger(log.Get()),
		editor.WithPlugins(plugins.Default(pluginCfg)...),
	)
}

func writeDocument(cmd *cobra.Command, doc *document.Document, minify bool) error {
	result, err := markup.Serialize(doc, markup.SerializeOptions{Minify: minify || getConfig().Export.Minify})
	if err != nil {
		return errors.Wrap(err, "failed to serialize document")
	}
	_, err = cmd.OutOrStdout().Write(result)
	return errors.Wrap(err, "failed to write result")
}

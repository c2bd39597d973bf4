package derive

import (
	"bufio"
	"io"
	"strings"

	"github.com/NicholasDeLioncourt/phonix/pkg/commands/internal"
	"github.com/NicholasDeLioncourt/phonix/pkg/errors"
	"github.com/NicholasDeLioncourt/phonix/pkg/export"
	"github.com/NicholasDeLioncourt/phonix/pkg/internal/hashutil"
	"github.com/NicholasDeLioncourt/phonix/pkg/logging"
	"github.com/NicholasDeLioncourt/phonix/pkg/phonology"
	"github.com/NicholasDeLioncourt/phonix/pkg/rule"
)

// Options defines the options for the Derive command.
type Options struct {
	// Definition is the phonology file; empty selects the standard one.
	Definition string
	// Words are derived in order, before any read from Input.
	Words []string
	// Input, when set, supplies words separated by whitespace. Lines
	// starting with '#' are skipped.
	Input io.Reader
	// Seed makes rules with an application rate reproducible. Zero leaves
	// them unseeded.
	Seed uint64
	// Trace logs every rule event.
	Trace bool
}

// Derive runs every word through the phonology's rules.
func Derive(opts Options) (*export.Report, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "Derive").Msg("Executing command")
	defer logging.LogOperationStart(log, "derive")()

	p, err := internal.LoadPhonology(opts.Definition)
	if err != nil {
		return nil, err
	}
	if opts.Seed != 0 {
		p.Seed(opts.Seed)
	}

	rec := export.NewRecorder(p.Spell)
	p.Rules.AddListener(rec)
	if opts.Trace {
		p.Rules.AddListener(rule.NewTracer(p.Spell))
	}

	words, err := collect(opts)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "no words to derive")
	}

	for _, input := range words {
		w, err := p.Pronounce(input)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "cannot pronounce %q", input).
				WithDetail("word", input)
		}
		rec.Begin(input)
		p.Apply(w)
		rec.End(p.Spell(w))
	}

	report := export.NewReport(p.Name, rec.Derivations())
	if opts.Definition != "" && opts.Definition != phonology.StdName {
		report.Definition = opts.Definition
		if report.Checksum, err = hashutil.FileChecksum(opts.Definition); err != nil {
			return nil, err
		}
	}
	log.Info().
		Str("command", "Derive").
		Str("report", report.ID).
		Int("words", len(words)).
		Msg("Command finished")
	return report, nil
}

func collect(opts Options) ([]string, error) {
	var words []string
	for _, w := range opts.Words {
		if w = strings.TrimSpace(w); w != "" {
			words = append(words, w)
		}
	}
	if opts.Input == nil {
		return words, nil
	}

	scanner := bufio.NewScanner(opts.Input)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, strings.Fields(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "failed to read words")
	}
	return words, nil
}

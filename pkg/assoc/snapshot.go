package assoc

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joshuapare/userchoice/internal/config"
	"github.com/joshuapare/userchoice/internal/regtext"
	"github.com/joshuapare/userchoice/userchoice"
	"github.com/joshuapare/userchoice/userchoice/reg"
)

// ExportOptions controls .reg export behavior.
type ExportOptions struct {
	// UTF8 writes UTF-8 instead of the UTF-16LE regedit produces.
	UTF8 bool
}

// Outcome reports one association written by Restore or Apply.
type Outcome struct {
	AssocID string
	ProgID  string
	Result  SetResult
	Err     error
}

// Export renders the stored records of assocIDs as a .reg file. Ids without
// a record are skipped; the number exported is returned.
func Export(assocIDs []string, opts *Options, eopts ExportOptions) ([]byte, int, error) {
	keys := make([]regtext.Key, 0, len(assocIDs))
	for _, id := range assocIDs {
		c, err := ReadChoice(id, opts)
		if errors.Is(err, reg.ErrNotExist) {
			opts.logger().Debug("no stored choice", "assoc", id)
			continue
		}
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", id, err)
		}
		keys = append(keys, regtext.Key{
			Path:    regtext.HKEYCurrentUser + `\` + userchoice.ChoicePath(id),
			Comment: "last write " + c.LastWrite.UTC().Format(time.RFC3339),
			Values: []regtext.Value{
				{Name: userchoice.ValueHash, Type: regtext.ValueTypeString, Data: c.Hash},
				{Name: userchoice.ValueProgID, Type: regtext.ValueTypeString, Data: c.ProgID},
			},
		})
	}
	enc := regtext.EncodingUTF16LE
	if eopts.UTF8 {
		enc = regtext.EncodingUTF8
	}
	out, err := regtext.Export(keys, regtext.ExportOptions{Encoding: enc})
	if err != nil {
		return nil, 0, err
	}
	return out, len(keys), nil
}

// Restore re-applies the ProgId of every UserChoice key in a .reg file.
// Stored hashes are ignored: they are bound to the minute they were written,
// so each record is rehashed and written now. Keys outside the association
// roots, deletions and keys without a ProgId are skipped.
func Restore(data []byte, opts *Options) ([]Outcome, error) {
	keys, err := regtext.Parse(bytes.NewReader(data), regtext.ParseOptions{})
	if err != nil {
		return nil, err
	}
	log := opts.logger()

	var out []Outcome
	for _, k := range keys {
		root, rest, ok := regtext.SplitRoot(k.Path)
		if !ok || root != regtext.HKEYCurrentUser || k.Delete {
			log.Debug("skipping key", "path", k.Path)
			continue
		}
		id, _, ok := userchoice.AssocIDFromPath(rest)
		if !ok {
			log.Debug("skipping key", "path", k.Path)
			continue
		}
		progID := ""
		for _, v := range k.Values {
			if strings.EqualFold(v.Name, userchoice.ValueProgID) && v.Type == regtext.ValueTypeString {
				progID = v.Data
			}
		}
		if progID == "" {
			log.Debug("no ProgId", "path", k.Path)
			continue
		}
		res, err := SetAssociationAndHash(id, progID, opts)
		out = append(out, Outcome{AssocID: id, ProgID: progID, Result: res, Err: err})
	}
	return out, nil
}

// Plan is a list of associations plus write settings, as read from YAML.
type Plan = config.Plan

// Association is one id/ProgID pair of a Plan.
type Association = config.Association

// LoadPlan reads and validates a YAML plan file.
func LoadPlan(path string) (*Plan, error) {
	return config.Load(path)
}

// ParsePlan decodes and validates a YAML plan.
func ParsePlan(data []byte) (*Plan, error) {
	return config.Parse(data)
}

// Apply writes every association in plan. The plan's write options override
// those in opts.
func Apply(plan *Plan, opts *Options) []Outcome {
	eff := Options{}
	if opts != nil {
		eff = *opts
	}
	if plan.WriteThreshold != 0 {
		eff.WriteThreshold = plan.WriteThreshold
	}
	if plan.MaxAttempts != 0 {
		eff.MaxAttempts = plan.MaxAttempts
	}
	if !plan.ShouldNotify() {
		eff.DisableNotify = true
	}

	out := make([]Outcome, 0, len(plan.Associations))
	for _, a := range plan.Associations {
		res, err := SetAssociationAndHash(a.ID, a.ProgID, &eff)
		out = append(out, Outcome{AssocID: a.ID, ProgID: a.ProgID, Result: res, Err: err})
	}
	return out
}

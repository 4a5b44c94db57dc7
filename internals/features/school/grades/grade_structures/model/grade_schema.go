// file: internals/features/school/grades/grade_structures/model/grade_schema.go
package model

import (
	"fmt"
	"strings"

	helper "schoolku_backend/internals/helpers"
)

type ComponentKind string

const (
	KindFormative ComponentKind = "formative"
	KindMidterm   ComponentKind = "midterm"
	KindFinal     ComponentKind = "final"
)

// ComponentDef: satu slot nilai.
type ComponentDef struct {
	Key   string        `json:"key"`
	Label string        `json:"label"`
	Kind  ComponentKind `json:"kind"`
}

// LearningScope: lingkup materi berisi slot formatif.
type LearningScope struct {
	ScopeKey   string         `json:"scope_key"`
	ScopeLabel string         `json:"scope_label"`
	Components []ComponentDef `json:"components"`
}

// GradeSchema: urutan lingkup materi + tepat satu PTS (midterm) dan satu PAS (final).
type GradeSchema struct {
	Scopes  []LearningScope `json:"scopes"`
	Midterm *ComponentDef   `json:"midterm,omitempty"`
	Final   *ComponentDef   `json:"final,omitempty"`
}

// Normalized merapikan schema lalu memvalidasinya.
// Komponen midterm/final yang ditulis di dalam lingkup dipindah ke slot atas,
// jadi bentuk datar maupun terstruktur sama-sama diterima.
// Error selalu *helper.ValidationError (key diawali "schema.").
func (s GradeSchema) Normalized() (GradeSchema, error) {
	ve := helper.NewValidationError()
	out := GradeSchema{Scopes: make([]LearningScope, 0, len(s.Scopes))}

	var mids, finals []ComponentDef
	if s.Midterm != nil {
		mids = append(mids, cleanDef(*s.Midterm, KindMidterm))
	}
	if s.Final != nil {
		finals = append(finals, cleanDef(*s.Final, KindFinal))
	}

	if len(s.Scopes) == 0 {
		ve.Add("schema.scopes", "minimal satu lingkup materi")
	}

	seenScope := map[string]bool{}
	for i, sc := range s.Scopes {
		path := fmt.Sprintf("schema.scopes[%d]", i)
		ns := LearningScope{
			ScopeKey:   strings.TrimSpace(sc.ScopeKey),
			ScopeLabel: strings.TrimSpace(sc.ScopeLabel),
		}
		switch {
		case ns.ScopeKey == "":
			ve.Add(path+".scope_key", "wajib diisi")
		case seenScope[ns.ScopeKey]:
			ve.Add(path+".scope_key", "duplikat: "+ns.ScopeKey)
		}
		seenScope[ns.ScopeKey] = true
		if ns.ScopeLabel == "" {
			ns.ScopeLabel = ns.ScopeKey
		}

		seenComp := map[string]bool{}
		for j, c := range sc.Components {
			cp := fmt.Sprintf("%s.components[%d]", path, j)
			d := cleanDef(c, KindFormative)
			switch d.Kind {
			case KindMidterm:
				mids = append(mids, d)
				continue
			case KindFinal:
				finals = append(finals, d)
				continue
			case KindFormative:
			default:
				ve.Add(cp+".kind", "harus formative/midterm/final")
				continue
			}
			switch {
			case d.Key == "":
				ve.Add(cp+".key", "wajib diisi")
			case seenComp[d.Key]:
				ve.Add(cp+".key", "duplikat: "+d.Key)
			}
			seenComp[d.Key] = true
			ns.Components = append(ns.Components, d)
		}
		if len(ns.Components) == 0 {
			ve.Add(path+".components", "minimal satu komponen formatif")
		}
		out.Scopes = append(out.Scopes, ns)
	}

	out.Midterm = single(ve, "schema.midterm", mids)
	out.Final = single(ve, "schema.final", finals)
	if out.Midterm != nil && out.Final != nil && out.Midterm.Key == out.Final.Key {
		ve.Add("schema.final", "key harus berbeda dengan midterm")
	}

	if err := ve.OrNil(); err != nil {
		return GradeSchema{}, err
	}
	return out, nil
}

func cleanDef(d ComponentDef, defaultKind ComponentKind) ComponentDef {
	d.Key = strings.TrimSpace(d.Key)
	d.Label = strings.TrimSpace(d.Label)
	if d.Label == "" {
		d.Label = d.Key
	}
	d.Kind = ComponentKind(strings.ToLower(strings.TrimSpace(string(d.Kind))))
	if d.Kind == "" {
		d.Kind = defaultKind
	}
	return d
}

// single: harus tepat satu, key tidak kosong.
func single(ve *helper.ValidationError, field string, defs []ComponentDef) *ComponentDef {
	switch len(defs) {
	case 0:
		ve.Add(field, "wajib tepat satu komponen")
		return nil
	case 1:
	default:
		ve.Add(field, fmt.Sprintf("hanya boleh satu komponen, ditemukan %d", len(defs)))
		return nil
	}
	d := defs[0]
	if d.Key == "" {
		ve.Add(field+".key", "wajib diisi")
		return nil
	}
	return &d
}

/* ===== Lookup (schema sudah dinormalisasi) ===== */

func (s GradeSchema) Scope(key string) (*LearningScope, bool) {
	for i := range s.Scopes {
		if s.Scopes[i].ScopeKey == key {
			return &s.Scopes[i], true
		}
	}
	return nil, false
}

// Addressable: (scopeKey, key) menunjuk slot formatif, atau scope kosong + key midterm/final.
func (s GradeSchema) Addressable(scopeKey, key string) bool {
	if scopeKey == "" {
		return (s.Midterm != nil && s.Midterm.Key == key) || (s.Final != nil && s.Final.Key == key)
	}
	sc, ok := s.Scope(scopeKey)
	if !ok {
		return false
	}
	for _, c := range sc.Components {
		if c.Key == key {
			return true
		}
	}
	return false
}

// FormativeCount: jumlah komponen formatif di semua lingkup.
func (s GradeSchema) FormativeCount() int {
	n := 0
	for _, sc := range s.Scopes {
		n += len(sc.Components)
	}
	return n
}

// fontmerge - merge supplementary glyphs into TrueType fonts
// Copyright (C) 2026  The fontmerge authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package gsub

import (
	"fmt"
	"slices"
	"strconv"

	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/opentype/gtab"

	"github.com/consolig/fontmerge/feature"
	"github.com/consolig/fontmerge/font"
)

// Compile parses the feature text and stores the resulting "GSUB" table
// in f.Tables.  Glyph names in the text refer to the glyph order of f.
func Compile(f *font.Font, text string) (err error) {
	order, err := f.GetGlyphOrder()
	if err != nil {
		return err
	}

	tokens := feature.Tokens(text)
	p := &parser{
		tokens:   tokens,
		order:    order,
		classes:  make(map[string][]glyph.ID),
		features: make(map[string][]*lookup),
		byName:   make(map[string]*lookup),
	}

	defer func() {
		if r := recover(); r != nil {
			for range tokens {
				// drain the lexer
			}
			switch e := r.(type) {
			case *SyntaxError:
				err = e
			case error:
				if e != ErrTooLarge {
					panic(r)
				}
				err = e
			default:
				panic(r)
			}
		}
	}()

	p.parse()
	p.finish()
	data := p.encode()

	if f.Tables == nil {
		f.Tables = make(map[string][]byte)
	}
	f.Tables["GSUB"] = data
	return nil
}

type parser struct {
	tokens  <-chan feature.Token
	backlog []feature.Token
	last    feature.Token

	order   *font.GlyphOrder
	classes map[string][]glyph.ID

	langSys  []langSys
	features map[string][]*lookup
	lookups  []*lookup
	byName   map[string]*lookup

	aalt     []feature.Token // features referenced by the "aalt" feature
	aaltSeen bool
}

type langSys struct {
	script, lang string
}

func (p *parser) parse() {
	for {
		tok := p.readToken()
		switch {
		case tok.Type == feature.TokenEOF:
			return
		case isSymbol(tok, ";"):
			// pass
		case tok.Type == feature.TokenClass:
			p.parseClassDef(tok.Val)
		case isKeyword(tok, "languagesystem"):
			p.parseLanguageSystem()
		case isKeyword(tok, "feature"):
			p.parseFeature()
		case isKeyword(tok, "lookup"):
			p.parseLookup(p.readLabel(), 0)
		case tok.Type == feature.TokenKeyword:
			p.fatal("%q statements are not supported", tok.Val)
		default:
			p.fatal("unexpected %s", tok)
		}
	}
}

func (p *parser) parseLanguageSystem() {
	script := p.readTag()
	lang := p.readTag()
	p.requiredSymbol(";")

	if len(script) != 4 || !isAlnum(script) {
		p.fatal("unsupported script tag %q", script)
	}
	if !isAlnum(lang) {
		p.fatal("unsupported language tag %q", lang)
	}

	ls := langSys{script: script, lang: lang}
	if !slices.Contains(p.langSys, ls) {
		p.langSys = append(p.langSys, ls)
	}
}

func (p *parser) parseClassDef(name string) {
	if _, ok := p.classes[name]; ok {
		p.fatal("multiple definitions for class %s", name)
	}
	p.requiredSymbol("=")
	tok := p.readToken()
	var gids []glyph.ID
	switch {
	case isSymbol(tok, "["):
		gids = p.readClassBody()
	case tok.Type == feature.TokenClass:
		gids = slices.Clone(p.class(tok.Val))
	default:
		p.fatal("expected glyph class, got %s", tok)
	}
	p.requiredSymbol(";")
	p.classes[name] = gids
}

func (p *parser) parseFeature() {
	tag := p.readTag()
	p.requiredSymbol("{")
	if tag == "aalt" {
		p.parseAalt()
	} else {
		p.parseFeatureBody(tag)
	}
	p.requiredEnd(tag)
}

func (p *parser) parseFeatureBody(tag string) {
	if _, ok := p.features[tag]; !ok {
		p.features[tag] = nil
	}

	var flags gtab.LookupFlags
	var current *lookup
	for {
		tok := p.readToken()
		switch {
		case isSymbol(tok, "}"):
			return
		case isSymbol(tok, ";"):
			// pass
		case tok.Type == feature.TokenClass:
			p.parseClassDef(tok.Val)
		case isKeyword(tok, "sub"), isKeyword(tok, "substitute"):
			typ, rules := p.parseSub()
			if current == nil || current.typ != typ {
				current = newLookup("", typ, flags)
				p.lookups = append(p.lookups, current)
				p.features[tag] = append(p.features[tag], current)
			}
			p.addRules(current, rules)
		case isKeyword(tok, "lookupflag"):
			flags = p.parseLookupFlag()
			current = nil
		case isKeyword(tok, "lookup"):
			name := p.readLabel()
			var l *lookup
			if p.optionalSymbol(";") {
				l = p.byName[name]
				if l == nil {
					p.fatal("unknown lookup %q", name)
				}
			} else {
				l = p.parseLookup(name, flags)
			}
			p.features[tag] = append(p.features[tag], l)
			current = nil
		case isKeyword(tok, "subtable"):
			p.requiredSymbol(";")
		case isKeyword(tok, "feature"):
			p.fatal("feature references are only allowed in aalt")
		case isKeyword(tok, "ignore"):
			p.fatal("contextual substitutions are not supported")
		case tok.Type == feature.TokenKeyword:
			p.fatal("%q statements are not supported", tok.Val)
		default:
			p.fatal("unexpected %s", tok)
		}
	}
}

func (p *parser) parseAalt() {
	p.aaltSeen = true
	for {
		tok := p.readToken()
		switch {
		case isSymbol(tok, "}"):
			return
		case isSymbol(tok, ";"):
			// pass
		case isKeyword(tok, "feature"):
			p.readTag()
			p.aalt = append(p.aalt, p.last)
			p.requiredSymbol(";")
		default:
			p.fatal("only feature references are supported in aalt, got %s", tok)
		}
	}
}

// parseLookup reads a named lookup block.  The "lookup" keyword and the
// name have already been read.
func (p *parser) parseLookup(name string, flags gtab.LookupFlags) *lookup {
	if _, ok := p.byName[name]; ok {
		p.fatal("multiple definitions for lookup %q", name)
	}
	p.optionalKeyword("useExtension")
	p.requiredSymbol("{")

	var l *lookup
	for {
		tok := p.readToken()
		switch {
		case isSymbol(tok, "}"):
			if l == nil {
				p.fatal("lookup %q is empty", name)
			}
			p.requiredEnd(name)
			p.byName[name] = l
			p.lookups = append(p.lookups, l)
			return l
		case isSymbol(tok, ";"):
			// pass
		case isKeyword(tok, "sub"), isKeyword(tok, "substitute"):
			typ, rules := p.parseSub()
			if l == nil {
				l = newLookup(name, typ, flags)
			} else if l.typ != typ {
				p.fatal("lookup %q mixes substitution types %d and %d", name, l.typ, typ)
			}
			p.addRules(l, rules)
		case isKeyword(tok, "lookupflag"):
			flags = p.parseLookupFlag()
			if l != nil {
				l.flags = flags
			}
		case isKeyword(tok, "subtable"):
			p.requiredSymbol(";")
		case tok.Type == feature.TokenKeyword:
			p.fatal("%q statements are not supported in lookups", tok.Val)
		default:
			p.fatal("unexpected %s", tok)
		}
	}
}

func (p *parser) parseLookupFlag() gtab.LookupFlags {
	var flags gtab.LookupFlags
	for {
		tok := p.readToken()
		switch {
		case isSymbol(tok, ";"):
			if flags&gtab.UseMarkFilteringSet != 0 {
				p.fatal("mark filtering sets are not supported")
			}
			return flags
		case tok.Type == feature.TokenNumber:
			x, err := strconv.ParseUint(tok.Val, 0, 16)
			if err != nil {
				p.fatal("invalid lookup flag %q", tok.Val)
			}
			flags |= gtab.LookupFlags(x)
		case tok.Type == feature.TokenKeyword:
			bit, ok := lookupFlagNames[tok.Val]
			if !ok {
				p.fatal("lookup flag %q is not supported", tok.Val)
			}
			flags |= bit
		default:
			p.fatal("unexpected %s in lookupflag", tok)
		}
	}
}

// parseSub reads a substitution rule.  The "sub" keyword has already been
// read.
func (p *parser) parseSub() (uint16, []rule) {
	in := p.readSequence()
	if len(in) == 0 {
		p.fatal("substitution without input glyphs")
	}

	tok := p.readToken()
	switch {
	case isKeyword(tok, "from"):
		if len(in) != 1 || len(in[0]) != 1 {
			p.fatal("alternate substitution needs a single input glyph")
		}
		out := p.readSequence()
		if len(out) != 1 {
			p.fatal("alternate substitution needs a glyph class")
		}
		p.requiredSymbol(";")
		return typeAlternate, []rule{{first: in[0][0], out: out[0]}}
	case isKeyword(tok, "by"):
		// handled below
	case isSymbol(tok, ";"):
		p.fatal("missing \"by\" in substitution")
	default:
		p.fatal("unexpected %s in substitution", tok)
	}

	if p.optionalKeyword("NULL") {
		p.fatal("glyph deletion is not supported")
	}
	out := p.readSequence()
	if len(out) == 0 {
		p.fatal("substitution without output glyphs")
	}
	p.requiredSymbol(";")

	var rules []rule
	switch {
	case len(in) == 1 && len(out) == 1:
		from, to := in[0], out[0]
		switch {
		case len(to) == 1:
			for _, gid := range from {
				rules = append(rules, rule{first: gid, out: []glyph.ID{to[0]}})
			}
		case len(to) == len(from):
			for i, gid := range from {
				rules = append(rules, rule{first: gid, out: []glyph.ID{to[i]}})
			}
		default:
			p.fatal("glyph classes of different length in single substitution")
		}
		return typeSingle, rules

	case len(in) == 1:
		if len(in[0]) != 1 {
			p.fatal("multiple substitution needs a single input glyph")
		}
		seq := make([]glyph.ID, len(out))
		for i, elem := range out {
			if len(elem) != 1 {
				p.fatal("multiple substitution cannot produce a glyph class")
			}
			seq[i] = elem[0]
		}
		return typeMultiple, []rule{{first: in[0][0], out: seq}}

	case len(out) == 1:
		if len(out[0]) != 1 {
			p.fatal("ligature substitution cannot produce a glyph class")
		}
		lig := out[0][0]
		for _, seq := range product(in) {
			rules = append(rules, rule{first: seq[0], rest: seq[1:], out: []glyph.ID{lig}})
		}
		return typeLigature, rules

	default:
		p.fatal("many-to-many substitutions are not supported")
		return 0, nil
	}
}

func (p *parser) addRules(l *lookup, rules []rule) {
	for _, r := range rules {
		if !l.add(r) {
			p.fatal("conflicting substitutions for glyph %q", p.order.Name(r.first))
		}
	}
}

// readSequence reads a sequence of glyphs and glyph classes.
// Each element of the result lists the glyphs of one position.
func (p *parser) readSequence() [][]glyph.ID {
	var res [][]glyph.ID
	for {
		tok := p.readToken()
		switch {
		case tok.Type == feature.TokenGlyph:
			res = append(res, []glyph.ID{p.glyph(tok)})
		case tok.Type == feature.TokenClass:
			res = append(res, p.nonEmpty(p.class(tok.Val)))
		case isSymbol(tok, "["):
			res = append(res, p.nonEmpty(p.readClassBody()))
		case isSymbol(tok, "'"):
			p.fatal("contextual substitutions are not supported")
		case tok.Type == feature.TokenCID:
			p.fatal("CIDs are not supported")
		default:
			p.backlog = append(p.backlog, tok)
			return res
		}
	}
}

// readClassBody reads the glyphs of an inline glyph class.  The opening
// bracket has already been read.
func (p *parser) readClassBody() []glyph.ID {
	var res []glyph.ID
	add := func(gids ...glyph.ID) {
		for _, gid := range gids {
			if !slices.Contains(res, gid) {
				res = append(res, gid)
			}
		}
	}

	var prev glyph.ID
	hasPrev := false
	for {
		tok := p.readToken()
		switch {
		case isSymbol(tok, "]"):
			return res
		case tok.Type == feature.TokenGlyph:
			if first, last, ok := p.splitRange(tok.GlyphName()); ok {
				add(p.glyphRange(first, last)...)
				prev, hasPrev = last, true
				continue
			}
			prev = p.glyph(tok)
			hasPrev = true
			add(prev)
		case tok.Type == feature.TokenClass:
			add(p.class(tok.Val)...)
			hasPrev = false
		case isSymbol(tok, "-"):
			if !hasPrev {
				p.fatal("glyph range without start")
			}
			end := p.readToken()
			if end.Type != feature.TokenGlyph {
				p.fatal("expected glyph name, got %s", end)
			}
			last := p.glyph(end)
			add(p.glyphRange(prev, last)...)
			prev = last
		default:
			p.fatal("unexpected %s in glyph class", tok)
		}
	}
}

// splitRange interprets an unknown glyph name of the form "a-b" as a range
// of glyphs.
func (p *parser) splitRange(name string) (glyph.ID, glyph.ID, bool) {
	if p.order.Has(name) {
		return 0, 0, false
	}
	for i := 0; i < len(name); i++ {
		if name[i] != '-' {
			continue
		}
		first, ok1 := p.order.ID(name[:i])
		last, ok2 := p.order.ID(name[i+1:])
		if ok1 && ok2 {
			return first, last, true
		}
	}
	return 0, 0, false
}

func (p *parser) glyphRange(first, last glyph.ID) []glyph.ID {
	if last < first {
		p.fatal("invalid glyph range %s-%s", p.order.Name(first), p.order.Name(last))
	}
	res := make([]glyph.ID, 0, last-first+1)
	for gid := first; gid <= last; gid++ {
		res = append(res, gid)
	}
	return res
}

func (p *parser) glyph(tok feature.Token) glyph.ID {
	gid, ok := p.order.ID(tok.GlyphName())
	if !ok {
		p.fatal("unknown glyph %q", tok.GlyphName())
	}
	return gid
}

func (p *parser) nonEmpty(gids []glyph.ID) []glyph.ID {
	if len(gids) == 0 {
		p.fatal("empty glyph class")
	}
	return gids
}

func (p *parser) class(name string) []glyph.ID {
	gids, ok := p.classes[name]
	if !ok {
		p.fatal("unknown glyph class %s", name)
	}
	return gids
}

// finish creates the lookup for the "aalt" feature.
func (p *parser) finish() {
	if !p.aaltSeen {
		return
	}
	var lookups []*lookup
	for _, ref := range p.aalt {
		ll, ok := p.features[ref.Val]
		if !ok {
			p.last = ref
			p.fatal("aalt refers to unknown feature %q", ref.Val)
		}
		lookups = append(lookups, ll...)
	}
	if l := alternates(lookups); l != nil {
		p.lookups = append([]*lookup{l}, p.lookups...)
		p.features["aalt"] = []*lookup{l}
	}
}

// requiredEnd reads the label and semicolon which close a block.
// The closing brace has already been read.
func (p *parser) requiredEnd(label string) {
	tok := p.readToken()
	if tok.Type != feature.TokenLabel || tok.Val != label {
		p.fatal("expected %q after closing brace, got %s", label, tok)
	}
	p.requiredSymbol(";")
}

func (p *parser) readLabel() string {
	tok := p.readToken()
	if tok.Type != feature.TokenLabel {
		p.fatal("expected label, got %s", tok)
	}
	return tok.Val
}

func (p *parser) readTag() string {
	tag := p.readLabel()
	if len(tag) > 4 {
		p.fatal("invalid tag %q", tag)
	}
	return tag
}

// readToken returns the next token, skipping comments.
func (p *parser) readToken() feature.Token {
	for {
		var tok feature.Token
		if n := len(p.backlog); n > 0 {
			tok = p.backlog[n-1]
			p.backlog = p.backlog[:n-1]
		} else {
			tok = <-p.tokens
		}
		if tok.Type == feature.TokenComment {
			continue
		}
		p.last = tok
		if tok.Type == feature.TokenError {
			p.fatal("invalid input %q", tok.Val)
		}
		return tok
	}
}

func (p *parser) requiredSymbol(sym string) {
	tok := p.readToken()
	if !isSymbol(tok, sym) {
		p.fatal("expected %q, got %s", sym, tok)
	}
}

func (p *parser) optionalSymbol(sym string) bool {
	tok := p.readToken()
	if !isSymbol(tok, sym) {
		p.backlog = append(p.backlog, tok)
		return false
	}
	return true
}

func (p *parser) optionalKeyword(kw string) bool {
	tok := p.readToken()
	if !isKeyword(tok, kw) {
		p.backlog = append(p.backlog, tok)
		return false
	}
	return true
}

func (p *parser) fatal(format string, a ...any) {
	panic(&SyntaxError{
		Line: p.last.Line,
		Col:  p.last.Col,
		Msg:  fmt.Sprintf(format, a...),
	})
}

func isSymbol(tok feature.Token, sym string) bool {
	return tok.Type == feature.TokenSymbol && tok.Val == sym
}

func isKeyword(tok feature.Token, kw string) bool {
	return tok.Type == feature.TokenKeyword && tok.Val == kw
}

// product returns all glyph sequences which can be formed by choosing one
// glyph from each position.
func product(seq [][]glyph.ID) [][]glyph.ID {
	res := [][]glyph.ID{nil}
	for _, choices := range seq {
		var next [][]glyph.ID
		for _, prefix := range res {
			for _, gid := range choices {
				next = append(next, append(slices.Clip(prefix), gid))
			}
		}
		res = next
	}
	return res
}

func isAlnum(s string) bool {
	for _, c := range s {
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9') {
			return false
		}
	}
	return s != ""
}

package plan

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"argspec-generator/internal/attr"
	"argspec-generator/internal/common"
	"argspec-generator/internal/diagnostic"
	"argspec-generator/internal/match"
	"argspec-generator/internal/pkgmeta"
	"argspec-generator/internal/schema"
)

// Resolver performs the compilation pipeline over one schema.Set.
// A Resolver is single use.
type Resolver struct {
	set    *schema.Set
	env    attr.Environment
	config Config
	diags  diagnostic.Diagnostics
	// inProgress holds the items on the current expansion path.
	inProgress map[string]bool
	path       []string
}

// NewResolver creates a new Resolver. env supplies metadata defaults of the
// root command and may be nil.
func NewResolver(set *schema.Set, env attr.Environment, config Config) *Resolver {
	return &Resolver{
		set:        set,
		env:        env,
		config:     config,
		inProgress: make(map[string]bool),
	}
}

// Compile resolves set with the default configuration.
func Compile(set *schema.Set, env attr.Environment) (*Spec, error) {
	return NewResolver(set, env, DefaultConfig()).Resolve()
}

// Resolve runs the full pipeline and returns the resolved Spec.
func (r *Resolver) Resolve() (*Spec, error) {
	if r.set == nil {
		return nil, errors.New("schema set is nil")
	}

	root := r.set.RootItem()
	if root == nil {
		return nil, fmt.Errorf("root item %q not found", r.set.Root)
	}

	cmd, err := r.resolveRoot(root)
	if err != nil {
		return nil, err
	}

	return &Spec{
		Root:        cmd,
		Imports:     maps.Clone(r.set.Imports),
		Diagnostics: r.diags,
	}, nil
}

// resolveRoot builds the application command. Its metadata falls back to
// the environment, then to the empty string.
func (r *Resolver) resolveRoot(it *schema.Item) (*Command, error) {
	entries, err := r.itemEntries(it)
	if err != nil {
		return nil, err
	}

	cmd := &Command{
		Name:     entries.OrEnv(keyName, pkgmeta.KeyName, r.env),
		Item:     it.Name,
		Version:  entries.OrEnv(keyVersion, pkgmeta.KeyVersion, r.env),
		Author:   entries.OrEnv(keyAuthor, pkgmeta.KeyAuthors, r.env),
		About:    entries.OrEnv(keyAbout, pkgmeta.KeyDescription, r.env),
		Settings: entries.Effective().Without(commandMetaKeys...),
		Pos:      it.Pos,
	}

	if err := r.fill(cmd, it); err != nil {
		return nil, err
	}

	return cmd, nil
}

func (r *Resolver) itemEntries(it *schema.Item) (attr.Entries, error) {
	entries, err := collect(it.Attrs, it.Doc, attr.ItemLevel, it.Name, "", it.Pos)
	if err != nil {
		return nil, err
	}

	loc := diagnostic.Location{Item: it.Name, Pos: it.Pos}
	if err := r.checkKeys(entries, KnownCommandKeys, loc); err != nil {
		return nil, err
	}

	return entries, nil
}

// fill populates cmd from the members of it: arguments for an options bag,
// subcommands for a command set.
func (r *Resolver) fill(cmd *Command, it *schema.Item) error {
	if err := r.enter(it); err != nil {
		return err
	}
	defer r.leave(it)

	if it.Kind == schema.KindOptions {
		return r.addMembers(cmd, it.Name, it.Members)
	}

	subs, err := r.variants(it)
	if err != nil {
		return err
	}

	cmd.Link = &SubcommandLink{Target: it.Name}
	cmd.Subcommands = subs

	return nil
}

func (r *Resolver) enter(it *schema.Item) error {
	if r.inProgress[it.Name] {
		cycle := append(slices.Clone(r.path), it.Name)

		return &CompileError{
			Kind: KindCyclicSchema,
			Item: it.Name,
			Pos:  it.Pos,
			Msg:  strings.Join(cycle, " -> "),
		}
	}

	r.inProgress[it.Name] = true
	r.path = append(r.path, it.Name)

	return nil
}

func (r *Resolver) leave(it *schema.Item) {
	delete(r.inProgress, it.Name)
	r.path = r.path[:len(r.path)-1]
}

// addMembers resolves the fields of an options bag into cmd. item labels
// errors and diagnostics.
func (r *Resolver) addMembers(cmd *Command, item string, members []*schema.Member) error {
	var carrier *schema.Member

	for _, m := range members {
		entries, err := collect(m.Attrs, m.Doc, attr.MemberLevel, item, m.Name, m.Pos)
		if err != nil {
			return err
		}

		skip, err := flag(entries, keySkip)
		if err != nil {
			return locate(err, item, m.Name, m.Pos)
		}

		if skip {
			continue
		}

		carrierFlag, err := isCarrier(entries)
		if err != nil {
			return locate(err, item, m.Name, m.Pos)
		}

		if !carrierFlag {
			arg, err := r.resolveArg(item, m, entries)
			if err != nil {
				return locate(err, item, m.Name, m.Pos)
			}

			if err := addArg(cmd, arg); err != nil {
				return locate(err, item, m.Name, m.Pos)
			}

			continue
		}

		if carrier != nil {
			return &CompileError{
				Kind:   KindMultipleSubcommands,
				Item:   item,
				Member: m.Name,
				Pos:    m.Pos,
				Msg:    fmt.Sprintf("%s and %s are both subcommand carriers", carrier.Name, m.Name),
			}
		}

		carrier = m

		if err := r.link(cmd, item, m, entries); err != nil {
			return locate(err, item, m.Name, m.Pos)
		}
	}

	return nil
}

func isCarrier(entries attr.Entries) (bool, error) {
	sub, err := flag(entries, keySubcommand)
	if err != nil {
		return false, err
	}

	flat, err := flag(entries, keyFlatten)
	if err != nil {
		return false, err
	}

	return sub || flat, nil
}

func addArg(cmd *Command, arg *Arg) error {
	if prev := cmd.Arg(arg.Name); prev != nil {
		return &CompileError{
			Kind: KindDuplicateArgument,
			Msg:  fmt.Sprintf("argument %q already defined by %s", arg.Name, prev.Member),
		}
	}

	cmd.Args = append(cmd.Args, arg)

	return nil
}

var carrierKeys = append(slices.Clone(memberControlKeys), "help", "long_help")

// link expands a subcommand carrier. Without flatten the variants of the
// target become subcommands; with flatten their arguments join cmd.
func (r *Resolver) link(cmd *Command, item string, m *schema.Member, entries attr.Entries) error {
	loc := diagnostic.Location{Item: item, Member: m.Name, Pos: m.Pos}
	if err := r.checkKeys(entries, carrierKeys, loc); err != nil {
		return err
	}

	flatten, err := flag(entries, keyFlatten)
	if err != nil {
		return err
	}

	optional, err := flag(entries, keyOptional)
	if err != nil {
		return err
	}

	target, wrapped, err := r.carrierTarget(m)
	if err != nil {
		return err
	}

	if flatten && entries.Has("help") {
		r.diags.AddInfo("ignored_help", "help on a flattened carrier has no effect", loc)
	}

	cmd.Link = &SubcommandLink{
		Carrier:  m.Name,
		Target:   target.Name,
		Optional: optional || wrapped,
		Flatten:  flatten,
	}

	if err := r.enter(target); err != nil {
		return err
	}
	defer r.leave(target)

	subs, err := r.variants(target)
	if err != nil {
		return err
	}

	if !flatten {
		cmd.Subcommands = subs
		return nil
	}

	for _, sub := range subs {
		if len(sub.Subcommands) > 0 {
			r.diags.AddInfo("flatten_drops_subcommands",
				fmt.Sprintf("subcommands of %s are not flattened", sub.Variant), loc)
		}

		for _, arg := range sub.Args {
			arg.FlattenedFrom = sub.Variant

			if err := addArg(cmd, arg); err != nil {
				return err
			}
		}
	}

	return nil
}

// carrierTarget finds the command set a carrier references. wrapped
// reports an optional wrapper around the reference.
func (r *Resolver) carrierTarget(m *schema.Member) (*schema.Item, bool, error) {
	sig, wrapped := r.unwrapOptional(m.Type)

	name := m.Ref
	if name == "" {
		if sig.Shape != schema.ShapeNamed || len(sig.Args) > 0 {
			return nil, false, unsupported(m.Type, "subcommand carrier must name a command set")
		}

		name = sig.Name
	}

	target := r.set.Lookup(name)
	if target == nil {
		return nil, false, unsupported(schema.TypeSig{}, fmt.Sprintf("subcommand carrier references unknown item %q", name))
	}

	if target.Kind != schema.KindCommands {
		return nil, false, unsupported(schema.TypeSig{},
			fmt.Sprintf("subcommand carrier references %s, which is an options item, not a command set", name))
	}

	return target, wrapped, nil
}

func (r *Resolver) unwrapOptional(sig schema.TypeSig) (schema.TypeSig, bool) {
	switch {
	case sig.Shape == schema.ShapePointer:
		return sig.Args[0], true
	case sig.Shape == schema.ShapeNamed && r.config.isOptional(sig.QualifiedName()) && len(sig.Args) == 1:
		return sig.Args[0], true
	default:
		return sig, false
	}
}

// variants builds one subcommand per member of a command set.
func (r *Resolver) variants(it *schema.Item) ([]*Command, error) {
	subs := make([]*Command, 0, len(it.Members))
	seen := make(map[string]string, len(it.Members))

	for _, v := range it.Members {
		sub, err := r.variant(it, v)
		if err != nil {
			return nil, locate(err, it.Name, v.Name, v.Pos)
		}

		if prev, ok := seen[sub.Name]; ok {
			err := compileErr(KindDuplicateArgument,
				fmt.Sprintf("subcommand %q already defined by %s", sub.Name, prev))

			return nil, locate(err, it.Name, v.Name, v.Pos)
		}

		seen[sub.Name] = v.Name
		subs = append(subs, sub)
	}

	return subs, nil
}

// variant builds the subcommand of one command-set member. The payload is
// either inline fields or a referenced item whose attributes precede the
// variant's own.
func (r *Resolver) variant(it *schema.Item, v *schema.Member) (*Command, error) {
	entries, err := collect(v.Attrs, v.Doc, attr.ItemLevel, it.Name, v.Name, v.Pos)
	if err != nil {
		return nil, err
	}

	loc := diagnostic.Location{Item: it.Name, Member: v.Name, Pos: v.Pos}
	if err := r.checkKeys(entries, KnownCommandKeys, loc); err != nil {
		return nil, err
	}

	sub := &Command{Item: it.Name, Variant: v.Name, Pos: v.Pos}

	switch {
	case len(v.Fields) > 0:
		if err := r.addMembers(sub, it.Name+"."+v.Name, v.Fields); err != nil {
			return nil, err
		}

	case !v.Type.IsZero():
		payload, err := r.payload(v)
		if err != nil {
			return nil, err
		}

		payloadEntries, err := r.itemEntries(payload)
		if err != nil {
			return nil, err
		}

		entries = append(payloadEntries, entries...)
		sub.Item = payload.Name

		if err := r.fill(sub, payload); err != nil {
			return nil, err
		}
	}

	sub.Name = entries.Get(keyName)
	if sub.Name == "" {
		sub.Name = match.KebabCase(v.Name)
	}

	sub.Version = entries.Get(keyVersion)
	sub.Author = entries.Get(keyAuthor)
	sub.About = entries.Get(keyAbout)
	sub.Settings = entries.Effective().Without(commandMetaKeys...)

	return sub, nil
}

func (r *Resolver) payload(v *schema.Member) (*schema.Item, error) {
	sig := v.Type
	if sig.Shape == schema.ShapePointer {
		sig = sig.Args[0]
	}

	name := v.Ref
	if name == "" {
		if sig.Shape != schema.ShapeNamed || len(sig.Args) > 0 {
			return nil, unsupported(v.Type, "variant payload must name an item")
		}

		name = sig.Name
	}

	payload := r.set.Lookup(name)
	if payload == nil {
		return nil, unsupported(schema.TypeSig{}, fmt.Sprintf("variant payload references unknown item %q", name))
	}

	return payload, nil
}

var argKeys = append(slices.Clone(KnownArgKeys), memberControlKeys...)

// resolveArg classifies a field, resolves its parser and its setters.
func (r *Resolver) resolveArg(item string, m *schema.Member, entries attr.Entries) (*Arg, error) {
	loc := diagnostic.Location{Item: item, Member: m.Name, Pos: m.Pos}
	if err := r.checkKeys(entries, argKeys, loc); err != nil {
		return nil, err
	}

	directive, hasParse := entries.Lookup(keyParse)

	class, err := r.config.Classify(m.Type, hasParse)
	if err != nil {
		return nil, err
	}

	var dir *attr.Entry
	if hasParse {
		dir = &directive
	}

	parser, err := ResolveParser(class, dir)
	if err != nil {
		return nil, err
	}

	name := entries.Get(keyName)
	if name == "" {
		name = match.KebabCase(m.Name)
	}

	settings, err := argSettings(entries, name)
	if err != nil {
		return nil, err
	}

	arg := &Arg{
		Name:        name,
		Member:      m.Name,
		Type:        m.Type,
		Base:        class.Base,
		Cardinality: class.Cardinality,
		Parser:      parser,
		Settings:    settings,
		Pos:         m.Pos,
	}

	if e, ok := entries.Lookup(keyDefaultValue); ok {
		arg.Default = e.Value.AsString()
		arg.HasDefault = true
	}

	return arg, nil
}

// collect runs the attribute resolver and converts syntax errors.
func collect(raws []attr.Raw, doc []string, src attr.Source, item, member string, pos common.Pos) (attr.Entries, error) {
	entries, err := attr.Collect(raws, doc, src, pos)
	if err == nil {
		return entries, nil
	}

	ce := &CompileError{Kind: KindAttributeParse, Item: item, Member: member, Pos: pos, Err: err}

	var se *attr.SyntaxError
	if errors.As(err, &se) {
		ce.Pos = se.Pos
		ce.Msg = fmt.Sprintf("malformed attribute %q: %s", se.Text, se.Msg)
	}

	return nil, ce
}

package analyze

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"reflect"
	"strconv"

	"golang.org/x/tools/go/packages"

	"argspec-generator/internal/attr"
	"argspec-generator/internal/schema"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and extracts argument schemas.
type Analyzer struct {
	dir  string
	set  *schema.Set
	root string
	// first is the first item carrying a directive, the fallback root.
	first string
}

// NewAnalyzer creates an Analyzer resolving patterns relative to dir.
// An empty dir means the current directory.
func NewAnalyzer(dir string) *Analyzer {
	return &Analyzer{dir: dir}
}

// LoadPackages loads the packages matching patterns and converts their
// annotated types into one schema set.
func (a *Analyzer) LoadPackages(ctx context.Context, patterns ...string) (*schema.Set, error) {
	cfg := &packages.Config{
		Mode:    LoadMode,
		Context: ctx,
		Dir:     a.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error

	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	})

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	a.set = &schema.Set{Imports: map[string]string{}}
	a.root, a.first = "", ""

	for _, pkg := range pkgs {
		if err := a.processPackage(pkg); err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}
	}

	a.set.Root = a.root
	if a.set.Root == "" {
		a.set.Root = a.first
	}

	if a.set.Root == "" && len(a.set.Items) > 0 {
		a.set.Root = a.set.Items[0].Name
	}

	return a.set, nil
}

func (a *Analyzer) processPackage(pkg *packages.Package) error {
	if pkg.Types == nil || pkg.TypesInfo == nil {
		return errors.New("no type information")
	}

	c := &converter{pkg: pkg, imports: a.set.Imports}

	for _, file := range pkg.Syntax {
		c.addFileImports(file)

		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}

			for _, spec := range gen.Specs {
				ts := spec.(*ast.TypeSpec)

				doc := ts.Doc
				if doc == nil && len(gen.Specs) == 1 {
					doc = gen.Doc
				}

				item, d, err := c.typeItem(ts, doc)
				if err != nil {
					return err
				}

				if item == nil {
					continue
				}

				a.set.Items = append(a.set.Items, item)

				if d.root && a.root == "" {
					a.root = item.Name
				}

				if d.marked && a.first == "" {
					a.first = item.Name
				}
			}
		}
	}

	return nil
}

type converter struct {
	pkg     *packages.Package
	imports map[string]string
}

// addFileImports records the qualifiers a file may use in parse functions.
func (c *converter) addFileImports(file *ast.File) {
	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}

		name := ""
		if spec.Name != nil {
			name = spec.Name.Name
		} else if imp, ok := c.pkg.Imports[path]; ok {
			name = imp.Name
		}

		if name == "" || name == "_" || name == "." {
			continue
		}

		if _, taken := c.imports[name]; !taken {
			c.imports[name] = path
		}
	}
}

// typeItem converts an exported struct type declaration. Other declarations
// yield nil.
func (c *converter) typeItem(ts *ast.TypeSpec, doc *ast.CommentGroup) (*schema.Item, directives, error) {
	d := readDirectives(c.pkg.Fset, doc)

	st, ok := ts.Type.(*ast.StructType)
	if !ok || !ts.Name.IsExported() || ts.TypeParams != nil {
		return nil, d, nil
	}

	item := &schema.Item{
		Name:  ts.Name.Name,
		Doc:   docLines(doc),
		Attrs: d.attrs,
		Pos:   position(c.pkg.Fset, ts.Pos()),
	}

	if d.commands {
		item.Kind = schema.KindCommands
	}

	for _, field := range st.Fields.List {
		members, err := c.fieldMembers(field, d.commands)
		if err != nil {
			return nil, d, fmt.Errorf("%s: %w", ts.Name.Name, err)
		}

		item.Members = append(item.Members, members...)
	}

	return item, d, nil
}

// fieldMembers converts one field declaration, which may name several fields.
// Variants with an anonymous struct payload get inline fields.
func (c *converter) fieldMembers(field *ast.Field, variant bool) ([]*schema.Member, error) {
	names := field.Names
	if len(names) == 0 {
		names = []*ast.Ident{embeddedName(field.Type)}
	}

	var raws []attr.Raw

	if field.Tag != nil {
		tag, err := strconv.Unquote(field.Tag.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid struct tag %s: %w", field.Tag.Value, err)
		}

		if text, ok := reflect.StructTag(tag).Lookup(TagKey); ok {
			if text == "-" {
				text = "skip"
			}

			raws = append(raws, attr.Text(text, position(c.pkg.Fset, field.Tag.Pos())))
		}
	}

	typ := c.pkg.TypesInfo.TypeOf(field.Type)

	var out []*schema.Member

	for _, name := range names {
		if name == nil || !name.IsExported() {
			continue
		}

		m := &schema.Member{
			Name:  name.Name,
			Doc:   docLines(field.Doc),
			Attrs: raws,
			Pos:   position(c.pkg.Fset, name.Pos()),
		}

		if variant && anonymousStruct(typ) != nil {
			fields, err := c.inlineFields(field.Type)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name.Name, err)
			}

			m.Fields = fields
		} else {
			sig, err := c.typeSig(typ)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name.Name, err)
			}

			m.Type = sig
		}

		out = append(out, m)
	}

	return out, nil
}

func (c *converter) inlineFields(expr ast.Expr) ([]*schema.Member, error) {
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}

	st, ok := expr.(*ast.StructType)
	if !ok {
		return nil, fmt.Errorf("unsupported inline payload %s", types.ExprString(expr))
	}

	var out []*schema.Member

	for _, f := range st.Fields.List {
		members, err := c.fieldMembers(f, false)
		if err != nil {
			return nil, err
		}

		out = append(out, members...)
	}

	return out, nil
}

// typeSig renders t the way the source spells it: local types bare,
// imported ones qualified by package name.
func (c *converter) typeSig(t types.Type) (schema.TypeSig, error) {
	if t == nil {
		return schema.TypeSig{}, errors.New("missing type information")
	}

	text := types.TypeString(t, func(p *types.Package) string {
		if p == c.pkg.Types {
			return ""
		}

		if _, taken := c.imports[p.Name()]; !taken {
			c.imports[p.Name()] = p.Path()
		}

		return p.Name()
	})

	return schema.ParseType(text)
}

func anonymousStruct(t types.Type) *types.Struct {
	if p, ok := t.(*types.Pointer); ok {
		t = p.Elem()
	}

	st, _ := t.(*types.Struct)

	return st
}

func embeddedName(expr ast.Expr) *ast.Ident {
	switch e := expr.(type) {
	case *ast.Ident:
		return e
	case *ast.StarExpr:
		return embeddedName(e.X)
	case *ast.SelectorExpr:
		return e.Sel
	case *ast.IndexExpr:
		return embeddedName(e.X)
	default:
		return nil
	}
}

// Package circuitlang is a small textual circuit description language
// for building aig.Manager values conveniently in tests and examples.
// It is test/example tooling, not part of the GLA core's semantics —
// the core itself never reads files or strings.
//
// Each non-blank, non-comment line is one declaration:
//
//	pi <name>              declare a primary input
//	reg <name>              declare a register (reset value 0)
//	<name> = <expr>         bind a named wire to a boolean expression
//	<reg>.next = <expr>     set a register's next-state expression
//	po = <expr>             declare the (single) property output
//
// Expressions reuse classical's lexer/parser (classical.ParseExpression)
// over the names already bound by earlier lines, instead of
// reimplementing tokenising and recursive descent for a second grammar.
// compileExpr then lowers the resulting AST into AIG objects, expanding
// every non-AND connective (OR, XOR, NAND, NOR, IMPLIES, IFF) via De
// Morgan/NNF rewrites into AND gates with complemented fanins, since an
// AIG has no node kind but AND-with-inverters (GLOSSARY "AIG").
package circuitlang

import (
	"fmt"
	"strings"

	"github.com/boolabs/gla/aig"
	"github.com/boolabs/gla/classical"
	"github.com/boolabs/gla/core"
)

// lit is a (object, complemented) literal — the same pair convention
// aig.Builder uses for AND fanins.
type lit struct {
	id   aig.ObjID
	comp bool
}

// Build parses src and returns the Manager it describes. Exactly one
// "po" line and a driver for every declared register are required.
func Build(src string) (*aig.Manager, error) {
	b := aig.NewBuilder()
	env := make(map[string]lit)
	pendingRegs := make(map[string]aig.ObjID)
	var poLit *lit

	for lineNo, raw := range strings.Split(src, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch {
		case fields[0] == "pi":
			name, err := singleName(fields, lineNo)
			if err != nil {
				return nil, err
			}
			if _, exists := env[name]; exists {
				return nil, circuitErr(lineNo, "name %q already declared", name)
			}
			id := b.AddPI()
			env[name] = lit{id: id}

		case fields[0] == "reg":
			name, err := singleName(fields, lineNo)
			if err != nil {
				return nil, err
			}
			if _, exists := env[name]; exists {
				return nil, circuitErr(lineNo, "name %q already declared", name)
			}
			id := b.NewRegister()
			env[name] = lit{id: id}
			pendingRegs[name] = id

		default:
			eq := strings.Index(line, "=")
			if eq < 0 {
				return nil, circuitErr(lineNo, "expected 'pi <name>', 'reg <name>', or '<name> = <expr>'")
			}
			lhs := strings.TrimSpace(line[:eq])
			rhsSrc := strings.TrimSpace(line[eq+1:])

			rhs, err := compileSource(b, env, rhsSrc)
			if err != nil {
				return nil, circuitErr(lineNo, "%v", err)
			}

			switch {
			case lhs == "po":
				if poLit != nil {
					return nil, circuitErr(lineNo, "property output already declared")
				}
				id := b.AddPropOut(rhs.id, rhs.comp)
				l := lit{id: id}
				poLit = &l

			case strings.HasSuffix(lhs, ".next"):
				regName := strings.TrimSuffix(lhs, ".next")
				ro, ok := pendingRegs[regName]
				if !ok {
					return nil, circuitErr(lineNo, "%q is not a declared register awaiting a driver", regName)
				}
				if _, err := b.SetRegisterDriver(ro, rhs.id, rhs.comp); err != nil {
					return nil, err
				}
				delete(pendingRegs, regName)

			default:
				if _, exists := env[lhs]; exists {
					return nil, circuitErr(lineNo, "name %q already declared", lhs)
				}
				env[lhs] = rhs
			}
		}
	}

	if poLit == nil {
		return nil, core.NewLogicError("circuitlang", "Build", "no property output ('po = ...') declared")
	}
	if len(pendingRegs) > 0 {
		for name := range pendingRegs {
			return nil, core.NewLogicError("circuitlang", "Build",
				fmt.Sprintf("register %q has no '.next' driver", name))
		}
	}
	return b.Manager(), nil
}

func singleName(fields []string, lineNo int) (string, error) {
	if len(fields) != 2 {
		return "", circuitErr(lineNo, "expected exactly one name after %q", fields[0])
	}
	return fields[1], nil
}

func circuitErr(lineNo int, format string, args ...interface{}) error {
	return core.NewLogicError("circuitlang", "Build",
		fmt.Sprintf("line %d: %s", lineNo+1, fmt.Sprintf(format, args...)))
}

// compileSource parses a boolean expression and lowers it to AIG gates
// in one step.
func compileSource(b *aig.Builder, env map[string]lit, src string) (lit, error) {
	ast, err := classical.ParseExpression(src)
	if err != nil {
		return lit{}, err
	}
	return compileExpr(b, env, ast)
}

// compileExpr lowers a classical.ASTNode into an AIG literal. Every
// connective besides AND/NOT is rewritten in terms of AND-with-inverters:
//
//	a|b    = !(!a & !b)
//	a nand b = !(a & b)
//	a nor b  = !a & !b
//	a^b    = (a & !b) | (!a & b)      — built from two ANDs plus an OR
//	a->b   = !(a & !b)
//	a<->b  = !(a^b)
func compileExpr(b *aig.Builder, env map[string]lit, node *classical.ASTNode) (lit, error) {
	switch node.Type {
	case classical.NodeVariable:
		l, ok := env[node.Value]
		if !ok {
			return lit{}, core.NewLogicError("circuitlang", "compileExpr",
				fmt.Sprintf("undeclared name %q", node.Value))
		}
		return l, nil

	case classical.NodeConstant:
		v := strings.ToLower(node.Value)
		switch v {
		case "true", "t", "1":
			return lit{id: aig.ConstID, comp: true}, nil
		default:
			return lit{id: aig.ConstID, comp: false}, nil
		}

	case classical.NodeNot:
		l, err := compileExpr(b, env, node.Children[0])
		if err != nil {
			return lit{}, err
		}
		return lit{id: l.id, comp: !l.comp}, nil

	case classical.NodeAnd:
		l, r, err := compileBinary(b, env, node)
		if err != nil {
			return lit{}, err
		}
		return lit{id: b.AddAnd(l.id, r.id, l.comp, r.comp)}, nil

	case classical.NodeOr:
		l, r, err := compileBinary(b, env, node)
		if err != nil {
			return lit{}, err
		}
		id := b.AddAnd(l.id, r.id, !l.comp, !r.comp)
		return lit{id: id, comp: true}, nil

	case classical.NodeNand:
		l, r, err := compileBinary(b, env, node)
		if err != nil {
			return lit{}, err
		}
		id := b.AddAnd(l.id, r.id, l.comp, r.comp)
		return lit{id: id, comp: true}, nil

	case classical.NodeNor:
		l, r, err := compileBinary(b, env, node)
		if err != nil {
			return lit{}, err
		}
		id := b.AddAnd(l.id, r.id, !l.comp, !r.comp)
		return lit{id: id}, nil

	case classical.NodeXor:
		l, r, err := compileBinary(b, env, node)
		if err != nil {
			return lit{}, err
		}
		and1 := b.AddAnd(l.id, r.id, l.comp, !r.comp) // l & !r
		and2 := b.AddAnd(l.id, r.id, !l.comp, r.comp) // !l & r
		id := b.AddAnd(and1, and2, true, true)        // !(!and1 & !and2) = and1 | and2
		return lit{id: id, comp: true}, nil

	case classical.NodeImplies:
		l, r, err := compileBinary(b, env, node)
		if err != nil {
			return lit{}, err
		}
		id := b.AddAnd(l.id, r.id, l.comp, !r.comp) // l & !r, inverted below
		return lit{id: id, comp: true}, nil

	case classical.NodeIff:
		l, r, err := compileBinary(b, env, node)
		if err != nil {
			return lit{}, err
		}
		and1 := b.AddAnd(l.id, r.id, l.comp, !r.comp)
		and2 := b.AddAnd(l.id, r.id, !l.comp, r.comp)
		xor := b.AddAnd(and1, and2, true, true) // xor value lives at comp=true
		return lit{id: xor, comp: false}, nil

	default:
		return lit{}, core.NewLogicError("circuitlang", "compileExpr", "unsupported expression node")
	}
}

func compileBinary(b *aig.Builder, env map[string]lit, node *classical.ASTNode) (lit, lit, error) {
	l, err := compileExpr(b, env, node.Children[0])
	if err != nil {
		return lit{}, lit{}, err
	}
	r, err := compileExpr(b, env, node.Children[1])
	if err != nil {
		return lit{}, lit{}, err
	}
	return l, r, nil
}

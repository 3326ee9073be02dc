// Package parse implements a grammar agnostic expression parser.
//
// A Formula is configured once with the token types playing the role of
// binary operators (grouped by precedence, from the lowest to the highest),
// unary operators, identifiers, parentheses and argument separator. It then
// turns the tokens read from a Parser into a tree. Each token stored in the
// tree is converted by the Converter given at configuration time.
//
// Binary operators are parsed by a chain of stages, one per precedence level.
// A stage reads its operands from the next stage, so operators of a higher
// level always end up below the operators of a lower level. The last stage
// handles function calls, groups, unary operators and atoms.
//
//	f, err := parse.New(grammar, convert)
//	node, err := f.Parse(parse.NewParser(tokenizer))
package parse

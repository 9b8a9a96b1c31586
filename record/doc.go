// Package record loads the data templates are rendered against.
//
// A [Record] is one row of named values. Records come from JSON or YAML
// documents ([Load]), from key=value pairs given on the command line
// ([Parse]), and may be narrowed with an expr-lang boolean expression
// ([CompileFilter]).
package record

// Package sheet implements the spreadsheet: an 8x20 cell store and a
// formula evaluator.
//
// Formulas start with "=" and use numbers, cell references (A1 to H20),
// the operators + - * / with unary signs, and parentheses. Anything else
// is a formula error. Errors are data: a formula that does not parse, sits
// on a reference cycle or produces a non-finite number displays "ERR".
package sheet

// Package ui provides semantic text formatting for terminal output.
//
// Formatters are named for what they format (Path, Flag, Variable) rather
// than their color, so output stays consistent across messages. When color
// is disabled, through NO_COLOR or a non-terminal stdout, Variable quotes its
// text instead so breadcrumbs stay readable:
//
//	ui.Variable.Sprint(".db.password")  // '.db.password'
package ui

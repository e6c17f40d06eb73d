// Package errors turns failures from building, mounting and publishing
// Raptor documents into coded, actionable diagnostics.
//
// Each diagnostic has a code (e.g. "R001") that maps to a category, a short
// message, a longer explanation and a fix suggestion:
//
//	err := errors.FromError(buildErr)
//	fmt.Fprint(os.Stderr, err.Format())
//	// ERROR R001: Conflicting class shorthands
//	//
//	//   cards.yaml: components.x-card.render[0]
//	//
//	//   A node sets both className and classMap. Only one of them may
//	//   describe the class list of a node.
//	//
//	//   Hint: Keep className for static lists or classMap for toggles.
package errors

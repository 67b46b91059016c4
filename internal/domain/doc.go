// Package domain contains the core entities of the flashcard system: users,
// flashcards with their scheduling state, study sessions and the quiz
// attempts recorded inside them. It is independent of storage and transport.
//
// The scheduling algorithms that operate on these entities live in the
// srs subpackage.
package domain

// Package mocks provides testify mocks of the store interfaces and a
// hand-rolled generation.Generator for service and handler tests.
//
//	cards := new(mocks.FlashcardStore)
//	cards.On("GetByID", mock.Anything, id).Return(card, nil)
//	cards.On("WithTx", mock.Anything).Return(cards)
package mocks

// Package mocks provides hand-written test doubles for the generation and
// service interfaces. Each mock records its calls and can be scripted per test.
package mocks

// Package normalisers provides implementations of the Normaliser
// interface. Outlook bodies arrive as HTML; the html normaliser strips
// markup and wraps each message as a retrievable document.
package normalisers

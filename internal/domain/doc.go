// Package domain holds the types shared by the pricing engine, the wizard
// and their collaborators: boat attributes, service definitions, the
// service catalog and the typed errors raised when they disagree.
package domain

// Package domain defines the core business entities for orderform.
//
// This package is part of the hexagonal architecture's innermost layer.
// It defines the fundamental types:
//
//   - FieldSchema: The ordered declaration of every order-form field
//   - Value: A typed field value (text, email, date, months, currency, enum)
//   - ExtractionResult: Fields recovered from an uploaded document
//   - ServiceLineItem: One row of the services table
//   - OrderForm: The validated snapshot handed to a renderer
//   - FormRecord: A generated form remembered in the history
//   - RawDocument: Opaque bytes uploaded by the user
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. All other packages depend on
// domain, never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library, github.com/shopspring/decimal
//   - Cannot Import: Any internal/ package, any other external dependency
package domain

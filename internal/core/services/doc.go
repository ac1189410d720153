// Package services implements the driving port interfaces.
// Services contain the order form logic: label-anchored extraction,
// form state, derived values and the wizard that gates generation.
// They orchestrate calls to driven ports (adapters) for text
// normalisation, clean-up and rendering.
//
// Services are pure Go with no CGO dependencies.
package services

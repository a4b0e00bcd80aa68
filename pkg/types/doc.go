// Package types defines the Model and Engine interfaces, element records,
// typed values, the type-name table, configuration, and the standard error
// types for the ifcmodel wrapper.
package types

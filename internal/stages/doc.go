// Package stages provides the built-in table translation stages:
//
//   - project: one-to-one; copies configured fields into a fresh record
//   - filter: one-to-zero-or-one; keeps records matching a field test
//   - explode: one-to-many; fans a list-valued field out to one record
//     per element
//
// Each stage type registers its factory with the registry package via
// init(); import this package (usually via blank import) to make the
// built-ins available to configuration-driven pipelines.
package stages

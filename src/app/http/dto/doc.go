// Package dto contains Data Transfer Objects for HTTP requests and responses.
//
// Request payloads are decoded straight into the schema package's input
// types, which carry the validation rules. The types here shape what leaves
// the API: field names follow the camelCase JSON the booking clients already
// speak, and password hashes never appear.
//
// Naming convention:
//   - Response types: <Resource>Response (e.g., BookingResponse)
//   - Constructors: <Resource>FromDomain
package dto

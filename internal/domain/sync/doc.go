// Package sync contains the order-synchronization bounded context.
// It models one-way import of storefront orders into the ERP.
//
// Key concepts:
//   - Order / LineItem: read-only order documents owned by the storefront
//   - ERPClient: port for the ERP's remote-procedure surface (find / create)
//   - OrderSource: port for the storefront's paginated order listing
//   - Resolution: tagged outcome of a get-or-create resolution step
//   - RunResult: per-invocation summary of an import run
//
// Design Pattern: Ports & Adapters
//   - Ports (interfaces) are defined here in the domain layer
//   - Adapters (implementations) are in the infrastructure layer
package sync

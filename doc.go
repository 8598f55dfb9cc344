// The HOL Anchor SDK for Go batches large ordered sets of attestation
// records into network-submittable groups, fits each group under the
// Hedera network's per-transaction gas ceiling, and anchors a rolling
// keccak-256 commitment over the full ordered record set to a smart
// contract on the Hedera public ledger.
//
// # Packages
//
//   - pkg/anchor: the batching, slicing, and chain-commitment core
//   - pkg/attestor: ledger orchestration (estimation, submission, resume)
//   - pkg/anchorstore: persisted sliced-collection files
//   - pkg/mirror: mirror node REST client
//   - pkg/shared: network and operator plumbing
//
// A publisher packs records with pkg/anchor, slices each batch to fit
// the network gas ceiling, and submits the slices one at a time through
// pkg/attestor. The on-ledger commitment lets an interrupted publisher
// resume exactly where it left off, and lets any third party verify a
// claimed commitment against the persisted record set bit for bit.
//
// # Documentation
//
// Full SDK documentation: https://hol.org/docs/libraries/anchor-sdk/
//
// Hashgraph Online ecosystem: https://hol.org
//
// # Installation
//
//	go get github.com/hashgraph-online/anchor-sdk-go@latest
package anchor_sdk_go

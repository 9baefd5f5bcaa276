// Package uuid256 bridges 128-bit UUIDs and 256-bit integer identifiers, such
// as NFT token ids, without losing information in either direction.
//
// # Overview
//
// One identifier has several textual forms:
//
//   - UUID: the usual 8-4-4-4-12 hex form. New ones are UUIDv7, so they sort
//     by creation time.
//   - Canonical: "0x" followed by exactly 64 lowercase hex digits. This is the
//     only accepted machine representation of a 256-bit value.
//   - Human readable: "u2:" followed by Bitcoin alphabet Base58 digits.
//   - Short: "u2s:" + 8 hex digits + "…" + 8 hex digits, for display only.
//
// # Quick Start
//
// Bridge a UUID into a token id and back:
//
//	u := uuid256.GenerateUUIDV7()
//	id := uuid256.FromUUID(u)              // upper 128 bits are zero
//	back, err := uuid256.U256ToUUID(id.Hex())
//
// Generate native 256-bit identifiers:
//
//	v0 := uuid256.U256IDV0()                // 252 random bits
//
//	gen, err := uuid256.NewGenerator(uuid256.DefaultGeneratorConfig(), logger, metrics)
//	v1, err := gen.NextV1(nil)              // time sortable
//
//	fmt.Println(uuid256.ToBase58(v1))       // u2:...
//	fmt.Println(uuid256.ToShort(v1))        // u2s:1019a4b2…9c0d7e31
//
// # Versions
//
// The top nibble of a 256-bit identifier is its version:
//
//	v0: 0000 | 252 random bits
//	v1: 0001 | T48 unix ms | N32 node | C16 counter | R156 random
//
// Bridged UUIDs always read as version 0, because their upper 128 bits are
// zero.
//
// A v1 Generator fixes its node id on the first call. Processes that must not
// share node ids can lease one from Redis:
//
//	alloc := uuid256.NewNodeAllocator(redis.NewClient(uuid256.RedisOptions()), "", logger, metrics)
//	gen, err := alloc.NewGenerator(ctx, uuid256.DefaultGeneratorConfig())
//
// # Errors
//
// Every failure wraps one of the sentinel errors, whose message is a stable
// code (INVALID_UUID_FORMAT, INVALID_U256_FORMAT, UPPER128_NOT_ZERO,
// INVALID_BASE58, BASE58_OVERFLOW, ...). Use errors.Is, or Code to get the
// string:
//
//	if _, err := uuid256.U256ToUUID(s); uuid256.IsUpper128NotZero(err) {
//	    // not a bridged value
//	}
//
// # Observability
//
// Metrics (Prometheus):
//
//	metrics := uuid256.NewPrometheusMetrics(prometheus.NewRegistry())
//
// Logging (Zap structured logging):
//
//	logger, _ := uuid256.NewProductionZapLogger()
//
// Package tokenid converts identifiers to the representations smart contracts
// use: big.Int, decimal strings and 32-byte hashes.
package uuid256

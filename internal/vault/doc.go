// Package vault implements the on-disk vault file.
//
// File layout, fixed-width fields with no length prefixes:
//
//	MAGIC(4) | SALT(8) | IV(16) | CIPHERTEXT(N) | ENC_TAG(64) | PLAIN_TAG(64)
//
// where N is the padded payload length, a multiple of the AES block
// size. Every write regenerates the salt and IV; every successful read
// immediately rewrites the whole file under a fresh pair, bounding the
// exposure of any single salt/IV to one read.
//
// Writes go through a temp file in the vault's directory followed by a
// rename, so an interrupted write never leaves a truncated vault. The
// vault is otherwise a shared mutable file with no locking: concurrent
// invocations race and the last writer wins.
package vault

// Package derive turns a validated BIP-39 phrase into Bitcoin addresses and
// extended public keys.
//
// Standard paths follow BIP-44 (legacy P2PKH), BIP-84 (native segwit P2WPKH)
// and BIP-86 (taproot P2TR) for account 0 on mainnet. A custom BIP-32 path
// may be given instead, in which case the format only selects the address
// encoding.
package derive

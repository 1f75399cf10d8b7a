/*
Package hashes provides small non-cryptographic hash functions used by the
arena allocator to pick probe start positions.

The allocator only needs *some* 32-bit hash with a spread good enough to
avoid long probe chains; the three functions in this package are
interchangeable and callers may substitute their own.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package hashes

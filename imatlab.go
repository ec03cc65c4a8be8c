/*
Package imatlab is a number theory engine on arbitrary precision integers and
a textbook RSA scheme built on top of it.

The modular package implements primality testing, sieving, factorization,
Bezout coefficients, modular exponentiation and inversion, Euler's totient,
Legendre symbols, square roots modulo a prime and the Chinese Remainder
Theorem. The rsa package derives key pairs from primes in an interval and
encrypts text one code point at a time with decimal padding. The command
package exposes the engine as a small console language, and the chat package
stores contact books and message files for the cryptochat tool.
*/
package imatlab

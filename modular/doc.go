/*
Package modular implements the number theory routines of the toolkit on
arbitrary precision integers: primality by trial division, sieving, Euclid's
algorithm and Bezout coefficients, modular exponentiation and inversion,
factorization by trial division and Pollard's rho, Euler's totient, Legendre
symbols, square roots modulo a prime (Cipolla), quadratic congruences and
systems of linear congruences (CRT).

All functions are pure: inputs are never modified and each result is a newly
allocated value, so they can be called concurrently. Failures are reported
with the sentinel errors of this package wrapped in an [*Error], and should be
tested with [errors.Is].
*/
package modular

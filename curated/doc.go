// This file is part of Dualview.
//
// Dualview is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Dualview is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Dualview.  If not, see <https://www.gnu.org/licenses/>.

// Package curated is a helper package for the plain Go language error type.
//
// Curated errors are created with the Errorf() function. Unlike fmt.Errorf()
// the pattern is kept alongside the values so that an error can later be
// identified by the pattern that created it:
//
//	const PoolExhausted = "pool: no writable slot for %dx%d"
//
//	err := curated.Errorf(PoolExhausted, w, h)
//	if curated.Is(err, PoolExhausted) {
//		...
//	}
//
// Has() performs the same check anywhere in the chain of wrapped curated
// errors. IsAny() answers whether an error was created by this package at
// all, which is to say whether it was expected.
//
// The Error() implementation normalises the chain so that adjacent duplicate
// parts are removed. Chains are made of parts separated by ": ". Wrapping an
// error with the same prefix at several levels of the call stack:
//
//	curated.Errorf("texstage: %v", curated.Errorf("texstage: map failed"))
//
// results in the message "texstage: map failed".
//
// Curated errors also implement Unwrap() so that errors.Is() and errors.As()
// from the standard library see any error values passed to Errorf().
package curated

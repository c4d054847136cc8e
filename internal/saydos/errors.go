/*
 * This file is part of the SayDos Disk Image Tool ("sdit")
 * Copyright (C) 2025 Andreas Signer <asigner@gmail.com>
 *
 * sdit is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * sdit is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with sdit.  If not, see <https://www.gnu.org/licenses/>.
 */

package saydos

import "errors"

// Every error returned by this package wraps one of these.
var (
	ErrMissingPath     = errors.New("path does not exist")
	ErrArgumentCount   = errors.New("wrong number of arguments")
	ErrUnknownAction   = errors.New("unknown action")
	ErrMalformedInput  = errors.New("malformed input")
	ErrSizeMismatch    = errors.New("size mismatch")
	ErrMissingArtifact = errors.New("missing artifact")
)

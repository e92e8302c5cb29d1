// Copyright (c) 2026 Libretto. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package manifest implements the Readium Web Publication Manifest data model
and its JSON codec.

Architecture:

  - Value types (Manifest, Metadata, Subject, Contributor, Link,
    LocalizedText) are immutable once decoded and safe to share between
    goroutines.
  - Decoding is maximally tolerant: malformed input degrades to an absent
    value or a dropped list element, never an error. Non-fatal issues are
    reported through an injected [WarningSink].
  - Encoding is the canonical inverse projection and cannot fail for a
    decoded value.

The package never performs I/O. Callers hand it decoded JSON values
(the `any` tree produced by encoding/json) or raw bytes via
[ParseManifest], plus an optional [HrefNormalizer] to rewrite resource
locators against the publication's base URL.
*/
package manifest

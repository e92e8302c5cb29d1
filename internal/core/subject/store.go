// Copyright (c) 2026 Libretto. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package subject

import "context"

type Repository interface {
	ListRawSubjects(context context.Context) ([]RawSubject, error)
}

package repos

import "database/sql"

func SnapshotOptions(s *SQLStore) *sql.TxOptions { return s.txOpts }

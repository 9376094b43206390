package employee

import "errors"

var (
	// ErrEmailAlreadyExists はメールアドレスの一意制約違反時に返却されます。
	ErrEmailAlreadyExists = errors.New("employee: email already exists")
	// ErrNilRepository は Service にリポジトリが渡されなかった場合に返却されます。
	ErrNilRepository = errors.New("employee: repository is required")
)

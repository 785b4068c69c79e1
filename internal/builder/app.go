package builder

import (
	"github.com/shouni/go-photo-mentor/internal/config"
	"github.com/shouni/go-photo-mentor/pkg/loader"
	"github.com/shouni/go-photo-mentor/pkg/publisher"
	"github.com/shouni/go-photo-mentor/pkg/workflow"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する
// これを pipeline に渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config    *config.Config               // Configは、環境変数とフラグから組み立てた設定です。
	Loader    *loader.Loader               // Loaderは、ローカル・gs://・http(s) の画像を読み込みます。
	Manager   *workflow.Manager            // Managerは、検証から送信までの講評ワークフローです。
	Publisher *publisher.CritiquePublisher // Publisherは、--output 指定時だけ作られる保存先です。
}

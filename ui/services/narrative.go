package services

import (
	"html/template"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// IntroMarkdown is shown above the upload form
const IntroMarkdown = `Bem-vindo ao aplicativo de análise de logística e transporte.
Por favor, carregue sua base de dados (CSV ou Excel) para visualizar a análise.
O app irá gerar gráficos sobre o status da vistoria e da coleta, além de mostrar a tabela completa.`

// NarrativeMarkdown is the fixed analysis printed under the charts
const NarrativeMarkdown = `**Análise do Status da Vistoria:**

- **Cancelada**: Embora a taxa de cancelamento seja baixa, é importante investigar as causas desses cancelamentos para evitar mais problemas e ineficiência.
- **Ok**: A maior parte das vistorias está sendo concluída com sucesso, o que indica boa eficiência na operação. No entanto, ainda há espaço para otimização.
- **Pendente**: A alta quantidade de pendências deve ser investigada. Pode haver gargalos ou falhas no planejamento das vistorias que precisam ser resolvidas.

**Análise do Status da Coleta:**

- **Cancelada**: Similar às vistorias, as coletas canceladas também devem ser analisadas para identificar causas subjacentes.
- **Concluído**: Um bom número de coletas concluídas, mas com espaço para melhorias.
- **Pendente**: Uma alta porcentagem de coletas pendentes, o que pode resultar em atrasos e custos adicionais. Deve ser uma prioridade reduzir esse número.
`

// RenderMarkdown converts trusted, compiled-in Markdown to HTML
func RenderMarkdown(source string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return template.HTML(markdown.ToHTML([]byte(source), p, renderer))
}

package mda

import "strings"

// filler pushes body text past the TOC range. It contains no numerals,
// newlines or keywords.
var filler = strings.Repeat("本页无正文", 450)

const tocListing = "2023年年度报告\n目录\n" +
	"第一节 公司简介 ........ 2\n" +
	"第二节 会计数据摘要 ........ 5\n" +
	"第三节 管理层讨论与分析 ........ 9\n" +
	"第四节 公司治理 ........ 20\n"

const tocBody = "\n第一节 公司简介\n公司简介正文。\n" +
	"第二节 会计数据摘要\n会计数据正文。\n" +
	"第三节 管理层讨论与分析\n一、报告期内公司经营情况\n营业收入增长。\n" +
	"第四节 公司治理\n治理正文。\n"

const tocMDA = "第三节 管理层讨论与分析\n一、报告期内公司经营情况\n营业收入增长。\n"

// keywordReport has no TOC marker; the MD&A numeral is only inferable from
// references to the section.
const keywordReport = "公司年度报告\n" +
	"本报告第三节管理层讨论与分析详细说明了经营情况。\n" +
	"请参阅第三节管理层讨论与分析中的风险提示。\n" +
	"\n第三节、管理层讨论与分析\n" +
	"报告期内公司营业收入稳步增长。\n" +
	"\n四、公司治理\n治理结构完善。\n"

const keywordMDA = "第三节、管理层讨论与分析\n报告期内公司营业收入稳步增长。\n"

package parser

const typeRegexp = `(?i)\.(xlsx|xlsm)$`
